package navmesh

import (
	"math"

	"github.com/akmonengine/navmesh/geo/r3"
	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
)

// triangleEntry is the R-tree record of one walkable triangle.
type triangleEntry struct {
	index int
	box   r3.AABB
	rect  rtreego.Rect
}

func (e *triangleEntry) Bounds() rtreego.Rect {
	return e.rect
}

func toRect(box r3.AABB) rtreego.Rect {
	// Min is never above Max after Expand, NewRectFromPoints cannot fail
	rect, _ := rtreego.NewRectFromPoints(
		rtreego.Point{box.Min.X(), box.Min.Y(), box.Min.Z()},
		rtreego.Point{box.Max.X(), box.Max.Y(), box.Max.Z()},
	)
	return rect
}

// holding refuses the triangles whose bounds do not hold p.
func holding(p mgl64.Vec3) rtreego.Filter {
	return func(_ []rtreego.Spatial, object rtreego.Spatial) (bool, bool) {
		return !object.(*triangleEntry).box.ContainsPoint(p), false
	}
}

func (nm *NavMesh) entries() []rtreego.Spatial {
	entries := make([]rtreego.Spatial, 0, len(nm.shapes))
	for i, shape := range nm.shapes {
		if !nm.walkable(i) {
			continue
		}
		box := shape.Bounds().Expand(boundsPadding)
		entries = append(entries, &triangleEntry{index: i, box: box, rect: toRect(box)})
	}
	return entries
}

// Location is a point attached to a triangle of the mesh.
type Location struct {
	Triangle int
	// Point lies on the surface of Triangle.
	Point mgl64.Vec3
}

// Locate attaches p to the mesh. It returns false when the mesh has no
// walkable triangle.
func (nm *NavMesh) Locate(p mgl64.Vec3, mode QueryMode) (Location, bool) {
	if nm.tree.Size() == 0 {
		return Location{}, false
	}

	var idx int
	switch mode {
	case QueryAccuracy:
		idx = nm.nearestSurface(p)
	default:
		idx = nm.nearestCenter(p)
	}

	return Location{Triangle: idx, Point: nm.shapes[idx].ClosestPoint(p)}, true
}

// nearestCenter returns, among the triangles whose bounds hold p, the one
// with the nearest center. When p is outside of every bound, the triangles
// whose bounds are the nearest to p are the candidates.
func (nm *NavMesh) nearestCenter(p mgl64.Vec3) int {
	query := rtreego.Point{p.X(), p.Y(), p.Z()}
	candidates := nm.tree.SearchIntersect(query.ToRect(boundsPadding), holding(p))
	if len(candidates) == 0 {
		seed := nm.tree.NearestNeighbor(query).(*triangleEntry)
		radius := seed.box.ClosestPoint(p).Sub(p).Len()
		candidates = nm.tree.SearchIntersect(query.ToRect(radius + boundsPadding))
	}

	best, bestDist := -1, math.Inf(1)
	for _, c := range candidates {
		i := c.(*triangleEntry).index
		if d := nm.centers[i].Sub(p).LenSqr(); d < bestDist || (d == bestDist && i < best) {
			best, bestDist = i, d
		}
	}
	return best
}

// nearestSurface returns the triangle holding the surface point nearest to
// p. The nearest bound gives an upper distance, every triangle whose bound
// lies within it is then tested exactly.
func (nm *NavMesh) nearestSurface(p mgl64.Vec3) int {
	query := rtreego.Point{p.X(), p.Y(), p.Z()}
	seed := nm.tree.NearestNeighbor(query).(*triangleEntry).index
	radius := nm.shapes[seed].ClosestPoint(p).Sub(p).Len()

	best, bestDist := seed, radius*radius
	for _, c := range nm.tree.SearchIntersect(query.ToRect(radius + boundsPadding)) {
		i := c.(*triangleEntry).index
		d := nm.shapes[i].ClosestPoint(p).Sub(p).LenSqr()
		if d < bestDist || (d == bestDist && i < best) {
			best, bestDist = i, d
		}
	}
	return best
}
