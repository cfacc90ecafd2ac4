package main

import (
	navigation "github.com/akmonengine/navmesh"
	"github.com/akmonengine/navmesh/config"
	"github.com/akmonengine/navmesh/mesh"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const waypointTolerance = 1e-9

const (
	mapSource mesh.Owner = iota + 1
	platformSource
)

func RunCmd() *cobra.Command {
	var configFile, sceneFile string
	var ticks int
	c := &cobra.Command{
		Use:   "run",
		Short: "run a scene headlessly",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configFile != "" {
				var err error
				if cfg, err = config.Load(configFile); err != nil {
					return err
				}
			}
			scene, err := LoadScene(sceneFile)
			if err != nil {
				return err
			}
			logger, err := cfg.Logger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			demo, err := NewDemo(cfg, scene, logger)
			if err != nil {
				return err
			}
			demo.Run(ticks)
			return nil
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "config file, defaults are used when empty")
	c.Flags().StringVar(&sceneFile, "scene", "", "HJSON scene file, the default scene is used when empty")
	c.Flags().IntVar(&ticks, "ticks", 600, "number of steps to run")
	return c
}

// Demo drives a world the way a game loop would: move the platform, step the
// world, then walk every agent toward its next waypoint.
type Demo struct {
	World    *navigation.World
	scene    *Scene
	platform *navigation.Source
	speeds   map[*navigation.Agent]float64
	log      *zap.SugaredLogger
}

func NewDemo(cfg config.Config, scene *Scene, logger *zap.Logger) (*Demo, error) {
	world, err := navigation.NewWorld(cfg, navigation.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	d := &Demo{
		World:  world,
		scene:  scene,
		speeds: make(map[*navigation.Agent]float64),
		log:    logger.Sugar(),
	}

	world.AddSource(navigation.NewSource(mapSource, navigation.NewTransform(), scene.MapTriangles()))
	if scene.Platform != nil {
		d.platform = navigation.NewSource(platformSource, navigation.NewTransform(), scene.PlatformTriangles())
		world.AddSource(d.platform)
	}

	for _, def := range scene.Agents {
		agent := navigation.NewAgent(def.Id, def.Position)
		agent.SetDestination(def.Destination)
		world.AddAgent(agent)
		d.speeds[agent] = def.Speed
	}

	world.Subscribe(navigation.MESH_CHANGED, func(e navigation.Event) {
		ev := e.(navigation.MeshChangedEvent)
		d.log.Debugw("mesh changed", "generation", ev.Generation, "vertices", ev.Vertices, "triangles", ev.Triangles)
	})
	world.Subscribe(navigation.PATH_UNREACHABLE, func(e navigation.Event) {
		ev := e.(navigation.PathUnreachableEvent)
		d.log.Infow("destination unreachable", "agent", ev.Agent.Id, "destination", ev.Destination)
	})
	world.Subscribe(navigation.PATH_RESTORED, func(e navigation.Event) {
		ev := e.(navigation.PathRestoredEvent)
		d.log.Infow("destination reachable again", "agent", ev.Agent.Id)
	})

	return d, nil
}

func (d *Demo) Run(ticks int) {
	for tick := 0; tick < ticks; tick++ {
		d.Tick(tick)
	}
	for _, a := range d.World.Agents {
		d.log.Infow("agent done",
			"agent", a.Id,
			"status", a.Status().String(),
			"position", a.Position(),
			"path", a.Path(),
		)
	}
}

func (d *Demo) Tick(tick int) {
	if d.platform != nil {
		position := d.scene.PlatformOffset(tick)
		if position != d.platform.Transform().Position {
			d.log.Debugw("moving platform", "tick", tick, "position", position)
			d.platform.SetTransform(navigation.Transform{Position: position, Rotation: mgl64.QuatIdent()})
		}
	}

	arrived := lo.FilterMap(d.World.Agents, func(a *navigation.Agent, _ int) (*navigation.Agent, bool) {
		return a, a.Status() == navigation.StatusArrived
	})
	d.World.Step()

	for _, a := range d.World.Agents {
		if a.Status() == navigation.StatusArrived && !lo.Contains(arrived, a) {
			d.log.Infow("agent arrived", "agent", a.Id, "tick", tick, "position", a.Position())
		}
		a.SetPosition(walk(a.Position(), a.Path(), d.speeds[a]*d.scene.Tick))
	}
}

// walk moves position along path by at most distance, skipping the
// waypoints it already stands on.
func walk(position mgl64.Vec3, path []mgl64.Vec3, distance float64) mgl64.Vec3 {
	for _, next := range path {
		leg := next.Sub(position)
		length := leg.Len()
		if length <= waypointTolerance {
			continue
		}
		if distance >= length {
			return next
		}
		return position.Add(leg.Mul(distance / length))
	}
	return position
}
