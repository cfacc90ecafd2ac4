// Package navigation keeps point agents moving over a mesh merged from many
// geometry sources.
//
// A World owns the sources, the agents and the incremental mesh they share.
// Every call to Step runs the same phases: changed sources submit their
// triangles, the mesh is compacted when enough vertices are orphaned, agents
// whose situation changed get a new path planned against an immutable
// snapshot of the mesh, and buffered events are sent.
package navigation

import (
	"fmt"

	"github.com/akmonengine/navmesh/config"
	"github.com/akmonengine/navmesh/mesh"
	"github.com/akmonengine/navmesh/navmesh"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

type World struct {
	Sources []*Source
	Agents  []*Agent
	Workers int

	Events Events

	mesh     *mesh.ProtoMesh
	snapshot *navmesh.NavMesh
	// generation of the mesh the snapshot was built from
	snapshotGeneration uint64
	removed  []mesh.Owner
	change   mesh.Change

	queryMode          navmesh.QueryMode
	pathMode           navmesh.PathMode
	clearPathOnFailure bool
	compactRatio       float64
	arrivalTolerance   float64

	logger *zap.Logger
}

type Option func(*World)

// WithLogger sets the logger of the world. Worlds log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// NewWorld creates an empty world configured by cfg.
func NewWorld(cfg config.Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	queryMode, err := config.ParseQueryMode(cfg.QueryMode)
	if err != nil {
		return nil, err
	}
	pathMode, err := config.ParsePathMode(cfg.PathMode)
	if err != nil {
		return nil, err
	}

	w := &World{
		Workers:            cfg.Workers,
		Events:             NewEvents(),
		mesh:               mesh.New(mesh.WithTolerance(cfg.MergeTolerance), mesh.WithGridCells(cfg.GridCells)),
		queryMode:          queryMode,
		pathMode:           pathMode,
		clearPathOnFailure: cfg.ClearPathOnFailure,
		compactRatio:       cfg.CompactRatio,
		arrivalTolerance:   cfg.MergeTolerance,
		logger:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// AddSource adds a geometry source, submitted at the next step
func (w *World) AddSource(source *Source) {
	source.changed = true
	w.Sources = append(w.Sources, source)
}

// RemoveSource removes a geometry source, its triangles leave the mesh at the
// next step
func (w *World) RemoveSource(source *Source) {
	k := lo.IndexOf(w.Sources, source)
	if k == -1 {
		return
	}

	w.Sources = append(w.Sources[:k], w.Sources[k+1:]...)
	w.removed = append(w.removed, source.Id)
}

func (w *World) AddAgent(agent *Agent) {
	w.Agents = append(w.Agents, agent)
}

func (w *World) RemoveAgent(agent *Agent) {
	k := lo.IndexOf(w.Agents, agent)
	if k == -1 {
		return
	}

	w.Agents = append(w.Agents[:k], w.Agents[k+1:]...)
	w.Events.forget(agent)
}

// Subscribe adds a listener for an event type, see Events.Subscribe.
func (w *World) Subscribe(eventType EventType, listener EventListener) {
	w.Events.Subscribe(eventType, listener)
}

// Mesh returns the merged mesh. It must not be modified while Step runs.
func (w *World) Mesh() *mesh.ProtoMesh {
	return w.mesh
}

// Snapshot returns the mesh the last paths were planned on, nil before the
// first planning.
func (w *World) Snapshot() *navmesh.NavMesh {
	return w.snapshot
}

// MeshChanged reports whether the last step changed the mesh.
func (w *World) MeshChanged() bool {
	return w.change.Dirty
}

func (w *World) Step() {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	// Phase 1: sources submit their triangles
	w.change = w.submit()

	// Phase 1.1: reclaim orphaned vertices
	w.compact()

	// Phase 2: plan the paths against an immutable snapshot
	w.navigate(w.change)

	// Phase 3: send the events of the step
	w.Events.processReachabilityEvents(w.Agents)
	w.Events.flush()
}

// submit replaces the triangles of every changed source, withdraws those of
// removed sources, and hands the resulting change over to the query phase.
func (w *World) submit() mesh.Change {
	for _, owner := range w.removed {
		w.mesh.RemoveEntity(owner)
		w.mesh.Dirty()
	}
	w.removed = w.removed[:0]

	changed := lo.Filter(w.Sources, func(s *Source, _ int) bool {
		return s.changed
	})
	task(w.Workers, changed, func(s *Source) {
		s.world = s.WorldTriangles()
	})

	for _, s := range changed {
		w.mesh.ReplaceEntity(s.Id, s.world)
		s.world = nil
		s.changed = false
	}

	change := w.mesh.Take()
	if change.Dirty {
		w.Events.emit(MeshChangedEvent{
			Generation: change.Generation,
			Vertices:   w.mesh.Pool().Len(),
			Triangles:  w.mesh.TriangleCount(),
		})
	}
	return change
}

func (w *World) compact() {
	if w.compactRatio <= 0 || w.mesh.OrphanRatio() <= w.compactRatio {
		return
	}

	orphans := w.mesh.Orphans()
	w.mesh.Compact()
	w.logger.Debug("vertex pool compacted",
		zap.Int("orphans", orphans),
		zap.Int("vertices", w.mesh.Pool().Len()),
	)
}

func (w *World) navigate(change mesh.Change) {
	pending := lo.Filter(w.Agents, func(a *Agent, _ int) bool {
		return a.needsPath(change.Dirty)
	})
	defer func() {
		for _, a := range w.Agents {
			a.moved = false
		}
	}()
	if len(pending) == 0 {
		return
	}

	// The mesh may have changed on steps without pending agents
	if w.snapshot == nil || w.snapshotGeneration != change.Generation {
		snapshot, err := w.mesh.Snapshot()
		if err != nil {
			w.logger.Error("mesh snapshot failed", zap.Error(err))
			panic(fmt.Errorf("navigation: %w", err))
		}
		w.snapshot = snapshot
		w.snapshotGeneration = change.Generation
		w.logger.Debug("mesh snapshot built",
			zap.Uint64("generation", change.Generation),
			zap.Int("triangles", snapshot.TriangleCount()),
		)
	}

	snapshot := w.snapshot
	task(w.Workers, pending, func(a *Agent) {
		a.result, a.found = snapshot.FindPath(a.position, a.destination, w.queryMode, w.pathMode)
	})

	for _, a := range pending {
		w.apply(a)
	}
}

// apply stores the planned path of an agent, dropping its first waypoint:
// the projected position of the agent itself.
func (w *World) apply(a *Agent) {
	result := a.result
	a.result = nil

	if !a.found {
		a.status = StatusUnreachable
		if w.clearPathOnFailure {
			a.path = nil
		}
		w.logger.Warn("destination unreachable",
			zap.Any("agent", a.Id),
			zap.Stringer("position", vec(a.position)),
			zap.Stringer("destination", vec(a.destination)),
		)
		return
	}

	a.path = result[1:]
	a.status = StatusFollowing
	if navmesh.Length(result) <= w.arrivalTolerance {
		a.status = StatusArrived
	}
	w.Events.emit(PathUpdatedEvent{Agent: a, Path: a.Path()})
}

type vec mgl64.Vec3

func (v vec) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}
