// Package r1 implements one-dimensional intervals on the real line.
//
// An Interval is either empty or strict. A StrictInterval is guaranteed to
// contain at least one value: it is either a single point or a closed range
// [lo, hi] with lo <= hi. The zero value of Interval is the empty interval.
package r1

import "math"

// StrictInterval is a non-empty closed interval.
type StrictInterval struct {
	lo, hi float64
	single bool
}

// Interval is a closed interval that may be empty.
type Interval struct {
	strict   StrictInterval
	nonEmpty bool
}

// Empty returns the empty interval.
func Empty() Interval {
	return Interval{}
}

// FromPoint returns an interval containing only p.
func FromPoint(p float64) Interval {
	return Interval{strict: NewPoint(p), nonEmpty: true}
}

// FromPoints returns the interval [lo, hi], or the empty interval when hi < lo.
func FromPoints(lo, hi float64) Interval {
	strict, ok := NewPoints(lo, hi)
	if !ok {
		return Empty()
	}
	return Interval{strict: strict, nonEmpty: true}
}

// Extend grows the interval so that it includes p.
func (i Interval) Extend(p float64) Interval {
	if !i.nonEmpty {
		return FromPoint(p)
	}
	return Interval{strict: i.strict.Extend(p), nonEmpty: true}
}

// Intersection returns the overlap of both intervals. The result is empty
// when either operand is empty or the ranges are disjoint.
func (i Interval) Intersection(other Interval) Interval {
	if !i.nonEmpty || !other.nonEmpty {
		return Empty()
	}
	strict, ok := i.strict.Intersection(other.strict)
	if !ok {
		return Empty()
	}
	return Interval{strict: strict, nonEmpty: true}
}

// IsEmpty reports whether the interval contains no value.
func (i Interval) IsEmpty() bool {
	return !i.nonEmpty
}

// Strict returns the non-empty form of the interval.
func (i Interval) Strict() (StrictInterval, bool) {
	return i.strict, i.nonEmpty
}

// NewPoint returns a strict interval containing only p.
func NewPoint(p float64) StrictInterval {
	return StrictInterval{lo: p, hi: p, single: true}
}

// NewPoints returns the strict interval [lo, hi]. It fails when hi < lo.
func NewPoints(lo, hi float64) (StrictInterval, bool) {
	if hi < lo || math.IsNaN(lo) || math.IsNaN(hi) {
		return StrictInterval{}, false
	}
	return StrictInterval{lo: lo, hi: hi}, true
}

// IsPoint reports whether the interval was built from a single value.
func (s StrictInterval) IsPoint() bool {
	return s.single
}

// Extend grows the interval so that it includes p.
func (s StrictInterval) Extend(p float64) StrictInterval {
	if s.single {
		switch {
		case s.lo < p:
			return StrictInterval{lo: s.lo, hi: p}
		case s.lo > p:
			return StrictInterval{lo: p, hi: s.lo}
		default:
			return s
		}
	}

	switch {
	case p < s.lo:
		return StrictInterval{lo: p, hi: s.hi}
	case p > s.hi:
		return StrictInterval{lo: s.lo, hi: p}
	default:
		return s
	}
}

// Center returns the midpoint of the interval.
func (s StrictInterval) Center() float64 {
	if s.single {
		return s.lo
	}
	return s.lo + (s.hi-s.lo)/2
}

// Lo returns the lowest value of the interval.
func (s StrictInterval) Lo() float64 {
	return s.lo
}

// Hi returns the highest value of the interval.
func (s StrictInterval) Hi() float64 {
	return s.hi
}

// Length returns hi - lo, zero for a point.
func (s StrictInterval) Length() float64 {
	if s.single {
		return 0
	}
	return s.hi - s.lo
}

// Contains reports whether p lies within the interval.
func (s StrictInterval) Contains(p float64) bool {
	if s.single {
		return p == s.lo
	}
	return p >= s.lo && p <= s.hi
}

// ContainsInterval reports whether other is a subset of s.
func (s StrictInterval) ContainsInterval(other StrictInterval) bool {
	if other.single {
		return s.Contains(other.lo)
	}
	return s.Contains(other.lo) && s.Contains(other.hi)
}

// ClampPoint returns the value of the interval closest to p.
func (s StrictInterval) ClampPoint(p float64) float64 {
	if s.single {
		return s.lo
	}
	switch {
	case p > s.hi:
		return s.hi
	case p < s.lo:
		return s.lo
	default:
		return p
	}
}

// Intersection returns the overlap of both intervals, if any.
func (s StrictInterval) Intersection(other StrictInterval) (StrictInterval, bool) {
	if s.single {
		if other.Contains(s.lo) {
			return s, true
		}
		return StrictInterval{}, false
	}
	if other.single {
		if s.Contains(other.lo) {
			return other, true
		}
		return StrictInterval{}, false
	}
	return NewPoints(math.Max(s.lo, other.lo), math.Min(s.hi, other.hi))
}
