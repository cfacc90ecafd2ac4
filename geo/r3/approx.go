// Package r3 implements the three-dimensional geometry kernel used by the
// mesh builder: lines, segments, planes, triangles and bounding boxes.
//
// Predicates are evaluated with a mixed absolute/relative tolerance (see
// ApproxEqual). Degenerate inputs such as zero-length directions or
// near-parallel planes never produce an error: the corresponding query simply
// reports that no result exists.
package r3

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the relative tolerance used by every predicate of the package.
const Epsilon = 1e-9

// ApproxEqual compares two floats with a tolerance scaled by their magnitude.
func ApproxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= Epsilon*scale
}

// ApproxZero reports whether a is zero within Epsilon.
func ApproxZero(a float64) bool {
	return ApproxEqual(a, 0)
}

// normalize returns the unit vector of v, or false when v has no length.
func normalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// parallel reports whether the unit vectors of a and b are parallel or
// anti-parallel. Zero vectors are never parallel to anything.
func parallel(a, b mgl64.Vec3) bool {
	na, ok := normalize(a)
	if !ok {
		return false
	}
	nb, ok := normalize(b)
	if !ok {
		return false
	}
	return ApproxEqual(math.Abs(na.Dot(nb)), 1)
}
