package r3

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireVecInDelta(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9, "component %d of %v, want %v", i, got, want)
	}
}

func TestLineIntersection(t *testing.T) {
	tests := []struct {
		name  string
		line  Line
		other Line
		want  mgl64.Vec3
	}{
		{
			name:  "meeting in the z=4 plane",
			line:  NewLine(mgl64.Vec3{6, 8, 4}, mgl64.Vec3{6, 7, 0}),
			other: NewLine(mgl64.Vec3{6, 8, 2}, mgl64.Vec3{6, 7, 4}),
			want:  mgl64.Vec3{9, 11.5, 4},
		},
		{
			name:  "oblique",
			line:  NewLine(mgl64.Vec3{3, -3, 0}, mgl64.Vec3{-7, 0, 4}),
			other: NewLine(mgl64.Vec3{2, 5, 1}, mgl64.Vec3{-6, -8, 3}),
			want:  mgl64.Vec3{-4, -3, 4},
		},
		{
			name:  "axis aligned",
			line:  NewLine(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}),
			other: NewLine(mgl64.Vec3{5, 1, 0}, mgl64.Vec3{0, 1, 0}),
			want:  mgl64.Vec3{5, 0, 0},
		},
		{
			name:  "behind the anchor",
			line:  NewLine(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0}),
			other: NewLine(mgl64.Vec3{-3, 4, 1}, mgl64.Vec3{0, -4, -1}),
			want:  mgl64.Vec3{-3, 0, 0},
		},
		{
			name:  "sharing an anchor",
			line:  NewLine(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 0, 0}),
			other: NewLine(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 1, 1}),
			want:  mgl64.Vec3{1, 2, 3},
		},
		{
			name:  "anchor of the other on the line",
			line:  NewLine(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 0}),
			other: NewLine(mgl64.Vec3{2, 2, 0}, mgl64.Vec3{0, 0, 1}),
			want:  mgl64.Vec3{2, 2, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, pair := range [][2]Line{{tt.line, tt.other}, {tt.other, tt.line}} {
				result, ok := pair[0].Intersection(pair[1])
				require.True(t, ok)
				require.True(t, result.IsPoint())

				point, ok := result.Point()
				require.True(t, ok)
				requireVecInDelta(t, tt.want, point)
			}
		})
	}
}

func assertNoIntersection(t *testing.T, line, other Line) LineIntersection {
	t.Helper()
	result, ok := line.Intersection(other)
	assert.False(t, ok)
	return result
}

func TestLineNoIntersection(t *testing.T) {
	tests := []struct {
		name  string
		line  Line
		other Line
	}{
		{
			name:  "skew",
			line:  NewLine(mgl64.Vec3{3, -3, 1}, mgl64.Vec3{-7, 0, 4}),
			other: NewLine(mgl64.Vec3{2, 5, 1}, mgl64.Vec3{-6, -8, 3}),
		},
		{
			name:  "parallel offset",
			line:  NewLine(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}),
			other: NewLine(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{-3, 0, 0}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, result := range []LineIntersection{
				assertNoIntersection(t, tt.line, tt.other),
				assertNoIntersection(t, tt.other, tt.line),
			} {
				assert.Equal(t, IntersectionNone, result.Kind())
				assert.False(t, result.IsPoint())
				_, ok := result.Point()
				assert.False(t, ok, "no point")
				_, ok = result.Line()
				assert.False(t, ok, "no line")
			}
		})
	}
}

func TestLineIdentical(t *testing.T) {
	line := NewLine(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 2, 3})
	other := NewLine(mgl64.Vec3{3, 5, 7}, mgl64.Vec3{-2, -4, -6})

	result, ok := line.Intersection(other)
	require.True(t, ok)
	assert.False(t, result.IsPoint())
	assert.Equal(t, IntersectionLine, result.Kind())

	shared, ok := result.Line()
	require.True(t, ok)
	assert.Equal(t, other, shared)

	_, ok = result.Point()
	assert.False(t, ok)
}

func TestLineParallelTo(t *testing.T) {
	line := NewLine(mgl64.Vec3{3, -3, 1}, mgl64.Vec3{-7, 0, 4})
	other := NewLine(mgl64.Vec3{4, -3, 1}, mgl64.Vec3{-14, 0, 8})
	opposite := NewLine(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{7, 0, -4})
	skew := NewLine(mgl64.Vec3{2, 5, 1}, mgl64.Vec3{-6, -8, 3})

	assert.True(t, line.ParallelTo(other))
	assert.True(t, other.ParallelTo(line))
	assert.True(t, line.ParallelTo(opposite))
	assert.False(t, line.ParallelTo(skew))
	assert.False(t, skew.ParallelTo(line))
}

func TestLineContains(t *testing.T) {
	line := NewLine(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{2, 0, 0})

	assert.True(t, line.Contains(mgl64.Vec3{1, 2, 3}), "anchor")
	assert.True(t, line.Contains(mgl64.Vec3{10, 2, 3}))
	assert.True(t, line.Contains(mgl64.Vec3{-10, 2, 3}))
	assert.False(t, line.Contains(mgl64.Vec3{10, 2.5, 3}))
}

func TestLineSegment(t *testing.T) {
	segment := NewSegment(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, 3})

	assert.Equal(t, 5.0, segment.Length())
	assert.Equal(t, mgl64.Vec3{4, 0, 3}, segment.End())
	assert.Equal(t, mgl64.Vec3{2, 0, 1.5}, segment.Midpoint())
	assert.True(t, segment.Line().Contains(mgl64.Vec3{8, 0, 6}))

	tests := []struct {
		name  string
		p     mgl64.Vec3
		want  mgl64.Vec3
		param float64
	}{
		{"before start", mgl64.Vec3{-4, 0, -3}, mgl64.Vec3{0, 0, 0}, 0},
		{"after end", mgl64.Vec3{8, 1, 6}, mgl64.Vec3{4, 0, 3}, 1},
		{"projected", mgl64.Vec3{2, 7, 1.5}, mgl64.Vec3{2, 0, 1.5}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, param := segment.ClosestPoint(tt.p)
			requireVecInDelta(t, tt.want, got)
			assert.InDelta(t, tt.param, param, 1e-12)
		})
	}
}

func TestLineIntersectionZeroValue(t *testing.T) {
	var result LineIntersection

	assert.False(t, result.IsPoint())
	_, ok := result.Point()
	assert.False(t, ok)
	_, ok = result.Line()
	assert.False(t, ok)

	var plane PlaneIntersection
	_, ok = plane.Line()
	assert.False(t, ok)
	_, ok = plane.Plane()
	assert.False(t, ok)
}
