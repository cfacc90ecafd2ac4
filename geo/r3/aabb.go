package r3

import (
	"math"

	"github.com/akmonengine/navmesh/geo/r1"
	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// AABBFromPoints returns the smallest box holding every point, built from
// one interval per axis.
func AABBFromPoints(points ...mgl64.Vec3) AABB {
	var axes [3]r1.Interval
	for _, p := range points {
		for i := range axes {
			axes[i] = axes[i].Extend(p[i])
		}
	}

	var box AABB
	for i, axis := range axes {
		s, ok := axis.Strict()
		if !ok {
			return AABB{}
		}
		box.Min[i] = s.Lo()
		box.Max[i] = s.Hi()
	}
	return box
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Expand grows the box by margin on every side.
func (a AABB) Expand(margin float64) AABB {
	m := mgl64.Vec3{margin, margin, margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// ClosestPoint returns the point of the box nearest to p.
func (a AABB) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	var q mgl64.Vec3
	for i := range q {
		q[i] = math.Min(math.Max(p[i], a.Min[i]), a.Max[i])
	}
	return q
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}
