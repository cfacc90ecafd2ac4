package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultTolerance is the component-wise distance under which two points
	// are merged into a single vertex.
	DefaultTolerance = 1e-6

	// DefaultGridCells is the number of hash buckets of a new pool.
	DefaultGridCells = 1024
)

// CellKey - coordinates of a grid cell
type CellKey struct {
	X, Y, Z int
}

type cell struct {
	vertexIndices []int
}

// VertexPool stores unique points. Two points closer than the tolerance on
// every axis are the same vertex; insertion returns the index of the lowest
// matching vertex, or appends a new one.
//
// Lookups go through a uniform hashed grid whose cells are at least as wide
// as the tolerance, so any match lies in one of the 27 cells around the
// queried point.
type VertexPool struct {
	tolerance float64
	cellSize  float64
	cells     []cell
	cellMask  int

	points []mgl64.Vec3
	refs   []int
}

// NewVertexPool creates a pool merging points within tolerance, hashed over
// numCells buckets (rounded up to a power of two).
func NewVertexPool(tolerance float64, numCells int) *VertexPool {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	numCells = nextPowerOfTwo(numCells)

	cells := make([]cell, numCells)
	for i := range cells {
		cells[i].vertexIndices = make([]int, 0, 4)
	}

	return &VertexPool{
		tolerance: tolerance,
		cellSize:  2 * tolerance,
		cells:     cells,
		cellMask:  numCells - 1,
	}
}

// nextPowerOfTwo - rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

func (vp *VertexPool) Tolerance() float64 {
	return vp.tolerance
}

// Len returns the number of vertices, referenced or not.
func (vp *VertexPool) Len() int {
	return len(vp.points)
}

// Point returns the vertex at index i.
func (vp *VertexPool) Point(i int) mgl64.Vec3 {
	return vp.points[i]
}

// Points returns a copy of every vertex, in index order.
func (vp *VertexPool) Points() []mgl64.Vec3 {
	points := make([]mgl64.Vec3, len(vp.points))
	copy(points, vp.points)
	return points
}

// Find returns the index of the vertex matching p, if any.
func (vp *VertexPool) Find(p mgl64.Vec3) (int, bool) {
	center := vp.worldToCell(p)
	found := -1

	for x := center.X - 1; x <= center.X+1; x++ {
		for y := center.Y - 1; y <= center.Y+1; y++ {
			for z := center.Z - 1; z <= center.Z+1; z++ {
				cellIdx := vp.hashCell(CellKey{x, y, z})

				// Buckets are shared by several cells, the tolerance test filters them
				for _, idx := range vp.cells[cellIdx].vertexIndices {
					if found != -1 && idx >= found {
						continue
					}
					if vp.matches(vp.points[idx], p) {
						found = idx
					}
				}
			}
		}
	}

	return found, found != -1
}

// Index returns the index of the vertex matching p, inserting p when no
// vertex matches.
func (vp *VertexPool) Index(p mgl64.Vec3) int {
	if idx, ok := vp.Find(p); ok {
		return idx
	}

	idx := len(vp.points)
	vp.points = append(vp.points, p)
	vp.refs = append(vp.refs, 0)
	vp.insert(idx, p)

	return idx
}

// Retain records one more triangle referencing vertex i.
func (vp *VertexPool) Retain(i int) {
	vp.refs[i]++
}

// Release records one less triangle referencing vertex i.
func (vp *VertexPool) Release(i int) {
	if vp.refs[i] > 0 {
		vp.refs[i]--
	}
}

// Refs returns the number of triangles referencing vertex i.
func (vp *VertexPool) Refs(i int) int {
	return vp.refs[i]
}

// Orphans returns the number of vertices no triangle references.
func (vp *VertexPool) Orphans() int {
	n := 0
	for _, r := range vp.refs {
		if r == 0 {
			n++
		}
	}
	return n
}

// Compact drops every unreferenced vertex and returns the mapping from old
// to new indices, -1 for dropped vertices. Cost is O(n) in the pool size.
func (vp *VertexPool) Compact() []int {
	remap := make([]int, len(vp.points))
	points := vp.points[:0:0]
	refs := vp.refs[:0:0]

	for i, p := range vp.points {
		if vp.refs[i] == 0 {
			remap[i] = -1
			continue
		}
		remap[i] = len(points)
		points = append(points, p)
		refs = append(refs, vp.refs[i])
	}

	vp.points = points
	vp.refs = refs

	vp.clear()
	for i, p := range vp.points {
		vp.insert(i, p)
	}

	return remap
}

func (vp *VertexPool) matches(a, b mgl64.Vec3) bool {
	return math.Abs(a.X()-b.X()) <= vp.tolerance &&
		math.Abs(a.Y()-b.Y()) <= vp.tolerance &&
		math.Abs(a.Z()-b.Z()) <= vp.tolerance
}

func (vp *VertexPool) insert(idx int, p mgl64.Vec3) {
	cellIdx := vp.hashCell(vp.worldToCell(p))
	vp.cells[cellIdx].vertexIndices = append(vp.cells[cellIdx].vertexIndices, idx)
}

func (vp *VertexPool) clear() {
	for i := range vp.cells {
		vp.cells[i].vertexIndices = vp.cells[i].vertexIndices[:0]
	}
}

// worldToCell - converts a world position into cell coordinates
func (vp *VertexPool) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / vp.cellSize)),
		Y: int(math.Floor(pos.Y() / vp.cellSize)),
		Z: int(math.Floor(pos.Z() / vp.cellSize)),
	}
}

// hashCell - hashes a cell to an index in the bucket array
func (vp *VertexPool) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & vp.cellMask
}
