// Package mesh implements the incremental builder merging the triangles of
// many geometry sources into a single deduplicated triangle mesh.
//
// Each triangle is tagged with the Owner that contributed it, so a source can
// replace or withdraw exactly its own batch. The builder exposes a dirty flag
// and a Change token so that the query side knows when its last snapshot went
// stale.
package mesh

import (
	"github.com/akmonengine/navmesh/navmesh"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

// Owner is the stable identity of a geometry source.
type Owner uint64

// Triangle is an entry of the triangle index: three vertex pool positions
// and the owner that contributed them.
type Triangle struct {
	A, B, C int
	Owner   Owner
}

// Indices returns the three vertex positions of the triangle.
func (t Triangle) Indices() [3]int {
	return [3]int{t.A, t.B, t.C}
}

// Change is the token handed from the mutation phase of a tick to its query
// phase.
type Change struct {
	// Dirty is set when triangles were added or removed since the last Take.
	Dirty bool
	// Generation counts every call to ProtoMesh.Dirty since creation.
	Generation uint64
}

type options struct {
	tolerance float64
	gridCells int
}

type Option func(*options)

// WithTolerance sets the component-wise distance under which points merge.
func WithTolerance(tolerance float64) Option {
	return func(o *options) {
		o.tolerance = tolerance
	}
}

// WithGridCells sets the number of hash buckets of the vertex pool.
func WithGridCells(cells int) Option {
	return func(o *options) {
		o.gridCells = cells
	}
}

// ProtoMesh owns the vertex pool, the triangle index and the dirty flag.
// It is not safe for concurrent use.
type ProtoMesh struct {
	pool       *VertexPool
	triangles  []Triangle
	dirty      bool
	generation uint64
}

func New(opts ...Option) *ProtoMesh {
	cfg := options{tolerance: DefaultTolerance, gridCells: DefaultGridCells}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &ProtoMesh{
		pool: NewVertexPool(cfg.tolerance, cfg.gridCells),
	}
}

func (m *ProtoMesh) Clean() {
	m.dirty = false
}

func (m *ProtoMesh) Dirty() {
	m.dirty = true
	m.generation++
}

func (m *ProtoMesh) IsClean() bool {
	return !m.dirty
}

func (m *ProtoMesh) IsDirty() bool {
	return m.dirty
}

// Take returns the pending change and clears the dirty flag.
func (m *ProtoMesh) Take() Change {
	change := Change{Dirty: m.dirty, Generation: m.generation}
	m.Clean()
	return change
}

// Peek returns the pending change without clearing it.
func (m *ProtoMesh) Peek() Change {
	return Change{Dirty: m.dirty, Generation: m.generation}
}

// AddTriangle merges the three points into the vertex pool and appends the
// triangle for owner. It does not mark the mesh dirty: callers add a batch
// and call Dirty once.
func (m *ProtoMesh) AddTriangle(owner Owner, triangle [3]mgl64.Vec3) {
	a := m.pool.Index(triangle[0])
	b := m.pool.Index(triangle[1])
	c := m.pool.Index(triangle[2])

	m.pool.Retain(a)
	m.pool.Retain(b)
	m.pool.Retain(c)

	m.triangles = append(m.triangles, Triangle{A: a, B: b, C: c, Owner: owner})
}

// RemoveEntity deletes every triangle of owner. The vertex pool keeps its
// size; vertices left unreferenced are reclaimed by Compact.
func (m *ProtoMesh) RemoveEntity(owner Owner) {
	for _, t := range m.triangles {
		if t.Owner == owner {
			m.pool.Release(t.A)
			m.pool.Release(t.B)
			m.pool.Release(t.C)
		}
	}

	m.triangles = lo.Reject(m.triangles, func(t Triangle, _ int) bool {
		return t.Owner == owner
	})
}

// ReplaceEntity swaps the triangles of owner for a new batch and marks the
// mesh dirty.
func (m *ProtoMesh) ReplaceEntity(owner Owner, triangles [][3]mgl64.Vec3) {
	m.RemoveEntity(owner)
	for _, t := range triangles {
		m.AddTriangle(owner, t)
	}
	m.Dirty()
}

// Compact reclaims orphaned vertices and rewrites the triangle index to the
// new positions. The geometry of every triangle is unchanged.
func (m *ProtoMesh) Compact() {
	if m.pool.Orphans() == 0 {
		return
	}

	remap := m.pool.Compact()
	for i := range m.triangles {
		t := &m.triangles[i]
		t.A, t.B, t.C = remap[t.A], remap[t.B], remap[t.C]
	}
}

// Orphans returns the number of vertices no triangle references.
func (m *ProtoMesh) Orphans() int {
	return m.pool.Orphans()
}

// OrphanRatio returns the share of unreferenced vertices in the pool.
func (m *ProtoMesh) OrphanRatio() float64 {
	if m.pool.Len() == 0 {
		return 0
	}
	return float64(m.pool.Orphans()) / float64(m.pool.Len())
}

func (m *ProtoMesh) Pool() *VertexPool {
	return m.pool
}

// Points returns a copy of the vertex pool.
func (m *ProtoMesh) Points() []mgl64.Vec3 {
	return m.pool.Points()
}

// Triangles returns a copy of the triangle index.
func (m *ProtoMesh) Triangles() []Triangle {
	triangles := make([]Triangle, len(m.triangles))
	copy(triangles, m.triangles)
	return triangles
}

func (m *ProtoMesh) TriangleCount() int {
	return len(m.triangles)
}

// Owners returns every owner with at least one triangle, in first-seen order.
func (m *ProtoMesh) Owners() []Owner {
	return lo.Uniq(lo.Map(m.triangles, func(t Triangle, _ int) Owner {
		return t.Owner
	}))
}

// Snapshot materializes the current vertices and triangles as an immutable
// navigation mesh. Owners are discarded.
func (m *ProtoMesh) Snapshot() (*navmesh.NavMesh, error) {
	indices := lo.Map(m.triangles, func(t Triangle, _ int) [3]int {
		return t.Indices()
	})
	return navmesh.New(m.pool.Points(), indices)
}
