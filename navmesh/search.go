package navmesh

import (
	"container/heap"
)

type searchNode struct {
	triangle int
	fScore   float64
	index    int
}

// step records the portal through which a triangle was reached.
type step struct {
	from   int
	portal Portal
}

type nodeHeap []*searchNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].fScore == h[j].fScore {
		return h[i].triangle < h[j].triangle
	}
	return h[i].fScore < h[j].fScore
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	node := x.(*searchNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// corridor returns the portals crossed by the cheapest triangle walk from
// start to goal, using center to center distances as costs and the straight
// distance to the goal center as heuristic.
func (nm *NavMesh) corridor(start, goal int) ([]Portal, bool) {
	if start == goal {
		return nil, true
	}

	goalCenter := nm.centers[goal]
	gScore := map[int]float64{start: 0}
	cameFrom := make(map[int]step)
	closed := make(map[int]bool)
	open := make(map[int]*searchNode)

	openSet := &nodeHeap{}
	heap.Init(openSet)
	first := &searchNode{triangle: start, fScore: nm.centers[start].Sub(goalCenter).Len()}
	heap.Push(openSet, first)
	open[start] = first

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*searchNode)
		delete(open, current.triangle)

		if current.triangle == goal {
			return unwind(cameFrom, start, goal), true
		}
		closed[current.triangle] = true

		for _, portal := range nm.portals[current.triangle] {
			if closed[portal.To] {
				continue
			}

			tentative := gScore[current.triangle] + nm.centers[current.triangle].Sub(nm.centers[portal.To]).Len()
			if g, seen := gScore[portal.To]; seen && tentative >= g {
				continue
			}

			gScore[portal.To] = tentative
			cameFrom[portal.To] = step{from: current.triangle, portal: portal}
			fScore := tentative + nm.centers[portal.To].Sub(goalCenter).Len()

			if node, ok := open[portal.To]; ok {
				node.fScore = fScore
				heap.Fix(openSet, node.index)
				continue
			}
			node := &searchNode{triangle: portal.To, fScore: fScore}
			heap.Push(openSet, node)
			open[portal.To] = node
		}
	}

	return nil, false
}

// unwind walks back from goal to start and returns the crossed portals in
// travel order.
func unwind(cameFrom map[int]step, start, goal int) []Portal {
	var portals []Portal
	for t := goal; t != start; {
		s := cameFrom[t]
		portals = append(portals, s.portal)
		t = s.from
	}

	for i, j := 0, len(portals)-1; i < j; i, j = i+1, j-1 {
		portals[i], portals[j] = portals[j], portals[i]
	}
	return portals
}
