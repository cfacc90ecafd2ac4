package r3

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is a transient value of three ordered points. It carries no
// connectivity and is only used for metrics and closest-point queries.
type Triangle struct {
	A, B, C mgl64.Vec3
}

func NewTriangle(a, b, c mgl64.Vec3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Center returns the centroid of the triangle.
func (t Triangle) Center() mgl64.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// Area returns half the length of (B-A) × (C-A).
func (t Triangle) Area() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Len() / 2
}

// Perimeter returns the sum of the three edge lengths.
func (t Triangle) Perimeter() float64 {
	return t.B.Sub(t.A).Len() + t.C.Sub(t.B).Len() + t.A.Sub(t.C).Len()
}

// Normal returns the unit normal following the A, B, C winding, or false for
// a degenerate triangle.
func (t Triangle) Normal() (mgl64.Vec3, bool) {
	return normalize(t.B.Sub(t.A).Cross(t.C.Sub(t.A)))
}

// Plane returns the supporting plane of the triangle.
func (t Triangle) Plane() Plane {
	return Plane{Point: t.A, Normal: t.B.Sub(t.A).Cross(t.C.Sub(t.A))}
}

func (t Triangle) Bounds() AABB {
	return AABBFromPoints(t.A, t.B, t.C)
}

// Edges returns the three edges A→B, B→C and C→A.
func (t Triangle) Edges() [3]LineSegment {
	return [3]LineSegment{
		NewSegment(t.A, t.B),
		NewSegment(t.B, t.C),
		NewSegment(t.C, t.A),
	}
}

// ClosestPoint returns the point of the triangle surface nearest to p.
//
// Uses the Voronoi region classification from Ericson, "Real-Time Collision
// Detection" §5.1.5. Degenerate triangles fall back to their closest edge.
func (t Triangle) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	if t.Area() == 0 {
		return t.closestEdgePoint(p)
	}

	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	ap := p.Sub(t.A)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.A
	}

	bp := p.Sub(t.B)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.B
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return t.A.Add(ab.Mul(v))
	}

	cp := p.Sub(t.C)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.C
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return t.A.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.B.Add(t.C.Sub(t.B).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.A.Add(ab.Mul(v)).Add(ac.Mul(w))
}

func (t Triangle) closestEdgePoint(p mgl64.Vec3) mgl64.Vec3 {
	best := t.A
	bestDist := math.Inf(1)
	for _, edge := range t.Edges() {
		q, _ := edge.ClosestPoint(p)
		if d := q.Sub(p).LenSqr(); d < bestDist {
			best, bestDist = q, d
		}
	}
	return best
}
