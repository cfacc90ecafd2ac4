// Package navmesh answers shortest path queries on an immutable triangle mesh.
//
// A NavMesh is a snapshot: it is built once from a point sequence and index
// triples, and every query on it is read-only, so a single snapshot may be
// shared by many goroutines. Triangles sharing an edge are connected through
// a portal (the shared edge); paths are searched with A* over that graph and
// then turned into waypoints following the requested PathMode.
package navmesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/navmesh/geo/r3"
	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrIndexOutOfRange is returned when a triangle references a vertex
	// outside of the point sequence.
	ErrIndexOutOfRange = errors.New("navmesh: triangle index out of range")
	// ErrInvalidPoint is returned for a vertex with a NaN or infinite component.
	ErrInvalidPoint = errors.New("navmesh: invalid point")
)

// QueryMode selects how a free point is attached to the mesh.
type QueryMode uint8

const (
	// QueryClosest picks the triangle whose center is nearest, among those
	// whose bounds hold the point.
	QueryClosest QueryMode = iota
	// QueryAccuracy picks the triangle holding the nearest surface point.
	QueryAccuracy
)

func (q QueryMode) String() string {
	switch q {
	case QueryClosest:
		return "closest"
	case QueryAccuracy:
		return "accuracy"
	}
	return fmt.Sprintf("QueryMode(%d)", uint8(q))
}

// PathMode selects how the triangle corridor becomes waypoints.
type PathMode uint8

const (
	// PathMidPoints crosses every portal at its middle.
	PathMidPoints PathMode = iota
	// PathAccuracy slides every crossing along its portal to shorten the path.
	PathAccuracy
)

func (p PathMode) String() string {
	switch p {
	case PathMidPoints:
		return "midpoints"
	case PathAccuracy:
		return "accuracy"
	}
	return fmt.Sprintf("PathMode(%d)", uint8(p))
}

const (
	rtreeMinChildren = 4
	rtreeMaxChildren = 16

	// boundsPadding keeps flat triangles from having empty R-tree boxes.
	boundsPadding = 1e-6
)

// Portal is the edge shared by two connected triangles.
type Portal struct {
	// To is the neighbouring triangle.
	To int
	// A and B are the vertex indices of the shared edge.
	A, B int
}

type edgeKey struct {
	lo, hi int
}

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// NavMesh is an immutable, queryable triangle mesh.
type NavMesh struct {
	points    []mgl64.Vec3
	triangles [][3]int
	shapes    []r3.Triangle
	centers   []mgl64.Vec3
	portals   [][]Portal
	tree      *rtreego.Rtree
	bounds    r3.AABB
}

// New validates the points and index triples and builds the portal graph and
// the spatial index. Zero-area triangles are kept but never connected nor
// located.
func New(points []mgl64.Vec3, triangles [][3]int) (*NavMesh, error) {
	for i, p := range points {
		for _, c := range p {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fmt.Errorf("%w: vertex %d is %v", ErrInvalidPoint, i, p)
			}
		}
	}

	nm := &NavMesh{
		points:    append([]mgl64.Vec3(nil), points...),
		triangles: append([][3]int(nil), triangles...),
		shapes:    make([]r3.Triangle, len(triangles)),
		centers:   make([]mgl64.Vec3, len(triangles)),
		portals:   make([][]Portal, len(triangles)),
		bounds:    r3.AABBFromPoints(points...),
	}

	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(points) {
				return nil, fmt.Errorf("%w: triangle %d references vertex %d of %d", ErrIndexOutOfRange, i, idx, len(points))
			}
		}
		nm.shapes[i] = r3.NewTriangle(points[tri[0]], points[tri[1]], points[tri[2]])
		nm.centers[i] = nm.shapes[i].Center()
	}

	nm.connect()
	nm.tree = rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren, nm.entries()...)

	return nm, nil
}

// connect links every pair of non-degenerate triangles sharing an edge.
func (nm *NavMesh) connect() {
	edges := make(map[edgeKey][]int)
	for i, tri := range nm.triangles {
		if !nm.walkable(i) {
			continue
		}
		for e := 0; e < 3; e++ {
			key := newEdgeKey(tri[e], tri[(e+1)%3])
			edges[key] = append(edges[key], i)
		}
	}

	for i, tri := range nm.triangles {
		if !nm.walkable(i) {
			continue
		}
		for e := 0; e < 3; e++ {
			key := newEdgeKey(tri[e], tri[(e+1)%3])
			for _, j := range edges[key] {
				if j != i {
					nm.portals[i] = append(nm.portals[i], Portal{To: j, A: key.lo, B: key.hi})
				}
			}
		}
	}
}

// walkable reports whether triangle i has three distinct vertices and a
// non-zero area.
func (nm *NavMesh) walkable(i int) bool {
	tri := nm.triangles[i]
	if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
		return false
	}
	return nm.shapes[i].Area() > 0
}

func (nm *NavMesh) Points() []mgl64.Vec3 {
	return append([]mgl64.Vec3(nil), nm.points...)
}

func (nm *NavMesh) Triangles() [][3]int {
	return append([][3]int(nil), nm.triangles...)
}

func (nm *NavMesh) TriangleCount() int {
	return len(nm.triangles)
}

// Triangle returns the geometry of triangle i.
func (nm *NavMesh) Triangle(i int) r3.Triangle {
	return nm.shapes[i]
}

// Neighbours returns the portals leaving triangle i.
func (nm *NavMesh) Neighbours(i int) []Portal {
	return append([]Portal(nil), nm.portals[i]...)
}

// Bounds returns the box holding every vertex of the mesh.
func (nm *NavMesh) Bounds() r3.AABB {
	return nm.bounds
}

func (nm *NavMesh) portalSegment(p Portal) r3.LineSegment {
	return r3.NewSegment(nm.points[p.A], nm.points[p.B])
}
