package navmesh

import (
	"math"

	"github.com/akmonengine/navmesh/geo/r1"
	"github.com/akmonengine/navmesh/geo/r3"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

const (
	relaxIterations = 256
	relaxTolerance  = 1e-12
	searchSteps     = 100

	// collinearTolerance is the distance under which a waypoint is considered
	// to lie on the segment joining its neighbours.
	collinearTolerance = 1e-6
)

// FindPath returns the waypoints leading from one point of the mesh to
// another. The first waypoint is from projected on the mesh and the last one
// is to projected on the mesh. It returns false when either point cannot be
// located or when no walk connects their triangles.
func (nm *NavMesh) FindPath(from, to mgl64.Vec3, query QueryMode, mode PathMode) ([]mgl64.Vec3, bool) {
	start, ok := nm.Locate(from, query)
	if !ok {
		return nil, false
	}
	goal, ok := nm.Locate(to, query)
	if !ok {
		return nil, false
	}

	portals, ok := nm.corridor(start.Triangle, goal.Triangle)
	if !ok {
		return nil, false
	}

	segments := lo.Map(portals, func(p Portal, _ int) r3.LineSegment {
		return nm.portalSegment(p)
	})

	path := make([]mgl64.Vec3, 0, len(segments)+2)
	path = append(path, start.Point)
	for _, s := range segments {
		path = append(path, s.Midpoint())
	}
	path = append(path, goal.Point)

	if mode == PathAccuracy {
		path = simplify(relax(path, segments))
	}
	return path, true
}

// relax moves every portal crossing of path to the point of its portal
// minimizing the distance between its neighbours, sweeping until no crossing
// moves anymore. path[i+1] is the crossing of segments[i].
func relax(path []mgl64.Vec3, segments []r3.LineSegment) []mgl64.Vec3 {
	for iter := 0; iter < relaxIterations; iter++ {
		moved := 0.0
		for i, s := range segments {
			p := crossing(s, path[i], path[i+2])
			moved = math.Max(moved, p.Sub(path[i+1]).Len())
			path[i+1] = p
		}
		if moved <= relaxTolerance {
			break
		}
	}
	return path
}

// crossing returns the point of s minimizing |prev - p| + |p - next|. The
// sum is convex along the segment, a ternary search finds its minimum.
func crossing(s r3.LineSegment, prev, next mgl64.Vec3) mgl64.Vec3 {
	cost := func(t float64) float64 {
		p := s.Point.Add(s.Vector.Mul(t))
		return p.Sub(prev).Len() + next.Sub(p).Len()
	}

	low, high := 0.0, 1.0
	for step := 0; step < searchSteps && high-low > 1e-15; step++ {
		m1 := low + (high-low)/3
		m2 := high - (high-low)/3
		if cost(m1) <= cost(m2) {
			high = m2
		} else {
			low = m1
		}
	}

	bracket, _ := r1.NewPoints(low, high)
	return s.Point.Add(s.Vector.Mul(bracket.Center()))
}

// simplify drops the inner waypoints lying on the segment joining their kept
// neighbours, duplicates included.
func simplify(path []mgl64.Vec3) []mgl64.Vec3 {
	if len(path) <= 2 {
		return path
	}

	kept := []mgl64.Vec3{path[0]}
	for i := 1; i < len(path)-1; i++ {
		prev := kept[len(kept)-1]
		q, _ := r3.NewSegment(prev, path[i+1]).ClosestPoint(path[i])
		if q.Sub(path[i]).Len() <= collinearTolerance {
			continue
		}
		kept = append(kept, path[i])
	}
	return append(kept, path[len(path)-1])
}

// Length returns the summed length of the legs of path.
func Length(path []mgl64.Vec3) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i].Sub(path[i-1]).Len()
	}
	return total
}
