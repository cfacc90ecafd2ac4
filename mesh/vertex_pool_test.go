package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexPoolWorldToCell(t *testing.T) {
	pool := NewVertexPool(0.5, 16) // cells of width 1

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected CellKey
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, CellKey{0, 0, 0}},
		{"positive", mgl64.Vec3{1.5, 2.3, 3.7}, CellKey{1, 2, 3}},
		{"negative", mgl64.Vec3{-1.5, -2.3, -3.7}, CellKey{-2, -3, -4}},
		{"large", mgl64.Vec3{100.7, -200.3, 50.1}, CellKey{100, -201, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pool.worldToCell(tt.position)
			if result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestVertexPoolHashCellInRange(t *testing.T) {
	pool := NewVertexPool(DefaultTolerance, 100)
	require.Len(t, pool.cells, 128)

	for x := -20; x <= 20; x++ {
		for y := -20; y <= 20; y++ {
			for z := -20; z <= 20; z++ {
				h := pool.hashCell(CellKey{x, y, z})
				if h < 0 || h >= len(pool.cells) {
					t.Fatalf("hashCell(%d,%d,%d) = %d, out of range [0, %d)", x, y, z, h, len(pool.cells))
				}
			}
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {1024, 1024},
	}
	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVertexPoolIndexDeduplicates(t *testing.T) {
	pool := NewVertexPool(DefaultTolerance, 64)

	a := pool.Index(mgl64.Vec3{1, 2, 3})
	b := pool.Index(mgl64.Vec3{1 + 0.5e-6, 2, 3 - 0.5e-6})
	c := pool.Index(mgl64.Vec3{1, 2, 3.1})

	assert.Equal(t, 0, a)
	assert.Equal(t, a, b, "points within tolerance share a vertex")
	assert.Equal(t, 1, c)
	assert.Equal(t, 2, pool.Len())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, pool.Point(a), "the first inserted point is kept")
}

func TestVertexPoolAcrossCellBoundary(t *testing.T) {
	pool := NewVertexPool(0.5, 64)

	a := pool.Index(mgl64.Vec3{0.99, -0.01, 2.99})
	b := pool.Index(mgl64.Vec3{1.01, 0.01, 3.01})

	assert.Equal(t, a, b)
	assert.Equal(t, 1, pool.Len())

	_, ok := pool.Find(mgl64.Vec3{1.6, 0, 3})
	assert.False(t, ok)
}

func TestVertexPoolReturnsLowestMatch(t *testing.T) {
	pool := NewVertexPool(0.5, 64)

	require.Equal(t, 0, pool.Index(mgl64.Vec3{0, 0, 0}))
	require.Equal(t, 1, pool.Index(mgl64.Vec3{0.8, 0, 0}))

	idx, ok := pool.Find(mgl64.Vec3{0.4, 0, 0})
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestVertexPoolRefs(t *testing.T) {
	pool := NewVertexPool(DefaultTolerance, 64)
	i := pool.Index(mgl64.Vec3{1, 1, 1})

	assert.Equal(t, 0, pool.Refs(i))
	assert.Equal(t, 1, pool.Orphans())

	pool.Retain(i)
	pool.Retain(i)
	assert.Equal(t, 2, pool.Refs(i))
	assert.Equal(t, 0, pool.Orphans())

	pool.Release(i)
	pool.Release(i)
	pool.Release(i)
	assert.Equal(t, 0, pool.Refs(i), "release never goes below zero")
}

func TestVertexPoolCompact(t *testing.T) {
	pool := NewVertexPool(DefaultTolerance, 64)
	a := pool.Index(mgl64.Vec3{0, 0, 0})
	pool.Index(mgl64.Vec3{1, 0, 0})
	c := pool.Index(mgl64.Vec3{0, 1, 0})
	pool.Retain(a)
	pool.Retain(c)

	remap := pool.Compact()

	assert.Equal(t, []int{0, -1, 1}, remap)
	assert.Equal(t, 2, pool.Len())
	assert.Equal(t, []mgl64.Vec3{{0, 0, 0}, {0, 1, 0}}, pool.Points())
	assert.Equal(t, 1, pool.Refs(remap[c]))

	idx, ok := pool.Find(mgl64.Vec3{0, 1, 0})
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = pool.Find(mgl64.Vec3{1, 0, 0})
	assert.False(t, ok, "dropped vertices are no longer indexed")
}
