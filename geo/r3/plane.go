package r3

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is the infinite plane through Point orthogonal to Normal.
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

func NewPlane(point, normal mgl64.Vec3) Plane {
	return Plane{Point: point, Normal: normal}
}

// PlaneFromPoints returns the plane through a, b and c. The normal follows
// the right-hand rule on (a-b) × (a-c) and is zero for collinear points.
func PlaneFromPoints(a, b, c mgl64.Vec3) Plane {
	return Plane{
		Point:  a,
		Normal: a.Sub(b).Cross(a.Sub(c)),
	}
}

// Contains reports whether p lies in the plane.
func (p Plane) Contains(point mgl64.Vec3) bool {
	n, ok := normalize(p.Normal)
	if !ok {
		return false
	}
	diff := point.Sub(p.Point)
	return math.Abs(n.Dot(diff)) <= Epsilon*math.Max(1, diff.Len())
}

// ContainsLine reports whether the whole line lies in the plane.
func (p Plane) ContainsLine(l Line) bool {
	return p.Contains(l.Point) && p.Contains(l.Point.Add(l.Direction))
}

// ParallelTo reports whether both normals are parallel or anti-parallel.
func (p Plane) ParallelTo(other Plane) bool {
	return parallel(p.Normal, other.Normal)
}

// CoplanarWith reports whether both planes are the same plane.
func (p Plane) CoplanarWith(other Plane) bool {
	return p.ParallelTo(other) && p.Contains(other.Point)
}

// Intersection returns the line shared by both planes, or the other plane
// itself when they are coplanar. Parallel distinct planes, and planes close
// enough to parallel that 1 - w² < ε² for w = n1·n2, have no intersection.
func (p Plane) Intersection(other Plane) (PlaneIntersection, bool) {
	if p.CoplanarWith(other) {
		return PlaneIntersection{kind: IntersectionPlane, plane: other}, true
	}

	n1, ok := normalize(p.Normal)
	if !ok {
		return PlaneIntersection{}, false
	}
	n2, ok := normalize(other.Normal)
	if !ok {
		return PlaneIntersection{}, false
	}

	w := n1.Dot(n2)
	divisor := 1 - w*w
	if divisor < Epsilon*Epsilon {
		return PlaneIntersection{}, false
	}

	// Point of the line closest to the origin: c1*n1 + c2*n2
	d1 := n1.Dot(p.Point)
	d2 := n2.Dot(other.Point)
	c1 := (d1 - w*d2) / divisor
	c2 := (d2 - w*d1) / divisor
	origin := n1.Mul(c1).Add(n2.Mul(c2))

	direction, ok := normalize(n1.Cross(n2))
	if !ok {
		return PlaneIntersection{}, false
	}

	return PlaneIntersection{
		kind: IntersectionLine,
		line: Line{Point: origin, Direction: direction},
	}, true
}

// PlaneIntersection is either a line or a whole plane.
type PlaneIntersection struct {
	kind  IntersectionKind
	line  Line
	plane Plane
}

func (i PlaneIntersection) Kind() IntersectionKind { return i.kind }

func (i PlaneIntersection) Line() (Line, bool) {
	return i.line, i.kind == IntersectionLine
}

func (i PlaneIntersection) Plane() (Plane, bool) {
	return i.plane, i.kind == IntersectionPlane
}
