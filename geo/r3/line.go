package r3

import (
	"math"

	"github.com/akmonengine/navmesh/geo/r1"
	"github.com/go-gl/mathgl/mgl64"
)

// Line is an infinite line through Point along Direction.
// Direction does not need to be normalized but must not be zero.
type Line struct {
	Point     mgl64.Vec3
	Direction mgl64.Vec3
}

// NewLine creates a line through point along direction.
func NewLine(point, direction mgl64.Vec3) Line {
	return Line{Point: point, Direction: direction}
}

// Contains reports whether p lies on the line.
func (l Line) Contains(p mgl64.Vec3) bool {
	diff := p.Sub(l.Point)
	// The anchor itself cannot be normalized against the direction
	if diff.Len() <= Epsilon {
		return true
	}
	return parallel(l.Direction, diff)
}

// ParallelTo reports whether both lines share the same (or opposite) direction.
func (l Line) ParallelTo(other Line) bool {
	return parallel(l.Direction, other.Direction)
}

// Intersection computes where l meets other.
//
// Algorithm:
//  1. If either anchor lies on the other line, the lines are identical when
//     parallel, otherwise they meet at that anchor.
//  2. Lines whose directions and anchor offset are not coplanar are skew.
//  3. Otherwise solve l.Point + t*l.Direction = other.Point + s*other.Direction
//     with t = sign(h·k) * |h| / |k|, h = (a2 - a1) × d2, k = d1 × d2.
//
// The boolean is false when the lines are skew, parallel but offset, or too
// close to parallel for the closed form to be meaningful.
func (l Line) Intersection(other Line) (LineIntersection, bool) {
	otherOnSelf := l.Contains(other.Point)
	selfOnOther := other.Contains(l.Point)
	if otherOnSelf || selfOnOther {
		if l.ParallelTo(other) {
			return LineIntersection{kind: IntersectionLine, line: other}, true
		}
		if selfOnOther {
			return LineIntersection{kind: IntersectionPoint, point: l.Point}, true
		}
		return LineIntersection{kind: IntersectionPoint, point: other.Point}, true
	}

	k := l.Direction.Cross(other.Direction)
	g := other.Point.Sub(l.Point)

	// Normal to the plane holding both directions must be orthogonal to the
	// segment joining the anchors
	triple := k.Dot(g)
	scale := math.Max(1, k.Len()*g.Len())
	if math.Abs(triple) > Epsilon*scale {
		return LineIntersection{}, false
	}

	h := g.Cross(other.Direction)
	hLen, kLen := h.Len(), k.Len()
	if hLen == 0 || kLen == 0 || kLen <= Epsilon*l.Direction.Len()*other.Direction.Len() {
		return LineIntersection{}, false
	}

	t := hLen / kLen
	if h.Dot(k) < 0 {
		t = -t
	}
	return LineIntersection{kind: IntersectionPoint, point: l.Point.Add(l.Direction.Mul(t))}, true
}

// IntersectionKind tells which variant a LineIntersection or PlaneIntersection holds.
type IntersectionKind uint8

const (
	// IntersectionNone is the kind of the zero value, returned along with false.
	IntersectionNone IntersectionKind = iota
	IntersectionPoint
	IntersectionLine
	IntersectionPlane
)

// LineIntersection is either a single point or a whole line.
type LineIntersection struct {
	kind  IntersectionKind
	point mgl64.Vec3
	line  Line
}

func (i LineIntersection) Kind() IntersectionKind { return i.kind }

func (i LineIntersection) IsPoint() bool { return i.kind == IntersectionPoint }

// Point returns the intersection point, if the lines met in one.
func (i LineIntersection) Point() (mgl64.Vec3, bool) {
	return i.point, i.kind == IntersectionPoint
}

// Line returns the shared line, if both lines were identical.
func (i LineIntersection) Line() (Line, bool) {
	return i.line, i.kind == IntersectionLine
}

// LineSegment is the finite segment from Point to Point+Vector.
type LineSegment struct {
	Point  mgl64.Vec3
	Vector mgl64.Vec3
}

// NewSegment returns the segment joining a and b.
func NewSegment(a, b mgl64.Vec3) LineSegment {
	return LineSegment{Point: a, Vector: b.Sub(a)}
}

func (s LineSegment) Length() float64 {
	return s.Vector.Len()
}

func (s LineSegment) End() mgl64.Vec3 {
	return s.Point.Add(s.Vector)
}

func (s LineSegment) Midpoint() mgl64.Vec3 {
	return s.Point.Add(s.Vector.Mul(0.5))
}

// Line returns the infinite line supporting the segment.
func (s LineSegment) Line() Line {
	return NewLine(s.Point, s.Vector)
}

// unit is the parameter range of a segment.
var unit, _ = r1.NewPoints(0, 1)

// ClosestPoint returns the point of the segment nearest to p, together with
// its parameter in [0, 1].
func (s LineSegment) ClosestPoint(p mgl64.Vec3) (mgl64.Vec3, float64) {
	lenSqr := s.Vector.LenSqr()
	if lenSqr == 0 {
		return s.Point, 0
	}
	t := unit.ClampPoint(p.Sub(s.Point).Dot(s.Vector) / lenSqr)
	return s.Point.Add(s.Vector.Mul(t)), t
}
