package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hjson/hjson-go/v4"
	"github.com/spf13/cobra"
)

// Tile codes of a scene map.
const (
	TileEmpty = iota
	TileFloor
	TileRampUp
	TileRampDown
	TilePlatform
)

var ErrScene = errors.New("invalid scene")

type Scene struct {
	TileSize float64 `json:"tileSize"`
	Width    int     `json:"width"`
	// Height of ramps and raised platforms.
	Height float64 `json:"height"`
	// Tiles lists the tile codes row by row, the first row lies at the
	// lowest y.
	Tiles    []int         `json:"tiles"`
	Platform *PlatformSpec `json:"platform"`
	Agents   []AgentSpec   `json:"agents"`
	// Duration of a tick in seconds.
	Tick float64 `json:"tick"`
}

// PlatformSpec is a source moving back and forth between its rest position
// and Offset, every Period ticks.
type PlatformSpec struct {
	Triangles [][3][3]float64 `json:"triangles"`
	Offset    [3]float64      `json:"offset"`
	Period    int             `json:"period"`
}

type AgentSpec struct {
	Id          string     `json:"id"`
	Position    [3]float64 `json:"position"`
	Destination [3]float64 `json:"destination"`
	// Speed in units per second.
	Speed float64 `json:"speed"`
}

const DefaultScene = `{
  # Map of the original demo, 8 tiles wide, centered on the origin.
  tileSize: 50
  width: 8
  height: 1
  tiles: [
    1, 1, 1, 1, 1, 0, 0, 0,
    1, 0, 1, 0, 1, 1, 1, 1,
    1, 0, 1, 1, 1, 0, 0, 1,
    1, 0, 0, 3, 0, 0, 0, 1,
    1, 1, 1, 4, 1, 1, 0, 1,
    1, 0, 0, 2, 0, 1, 0, 1,
    1, 0, 0, 1, 0, 1, 0, 1,
    1, 1, 0, 1, 0, 1, 1, 1,
  ]
  platform: {
    triangles: [
      [[-50, 100, 0], [-100, 100, 0], [-50, 150, 0]]
      [[-100, 100, 0], [-50, 150, 0], [-100, 150, 0]]
    ]
    offset: [0, 50, 0]
    period: 120
  }
  agents: [
    {
      id: player
      position: [0, 0, 0]
      destination: [100, 200, 0]
      speed: 100
    }
  ]
  tick: 0.016666666666666666
}
`

// ParseScene decodes an HJSON scene and fills the unset fields with their
// defaults.
func ParseScene(data []byte) (*Scene, error) {
	scene := new(Scene)
	if err := hjson.Unmarshal(data, scene); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScene, err)
	}
	if scene.TileSize == 0 {
		scene.TileSize = 1
	}
	if scene.Height == 0 {
		scene.Height = 1
	}
	if scene.Tick == 0 {
		scene.Tick = 1. / 60
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

func LoadScene(path string) (*Scene, error) {
	if path == "" {
		return ParseScene([]byte(DefaultScene))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Strip the UTF-8 BOM some editors write
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	return ParseScene(data)
}

func (s *Scene) Validate() error {
	var errs []error
	if s.TileSize < 0 {
		errs = append(errs, fmt.Errorf("%w: tileSize %v is negative", ErrScene, s.TileSize))
	}
	if s.Width <= 0 {
		errs = append(errs, fmt.Errorf("%w: width %d must be positive", ErrScene, s.Width))
	} else if len(s.Tiles)%s.Width != 0 {
		errs = append(errs, fmt.Errorf("%w: %d tiles do not fill rows of %d", ErrScene, len(s.Tiles), s.Width))
	}
	for i, code := range s.Tiles {
		if code < TileEmpty || code > TilePlatform {
			errs = append(errs, fmt.Errorf("%w: tile %d has unknown code %d", ErrScene, i, code))
		}
	}
	if s.Platform != nil && s.Platform.Period <= 0 {
		errs = append(errs, fmt.Errorf("%w: platform period %d must be positive", ErrScene, s.Platform.Period))
	}
	for _, a := range s.Agents {
		if a.Speed <= 0 {
			errs = append(errs, fmt.Errorf("%w: agent %q speed must be positive", ErrScene, a.Id))
		}
	}
	if s.Tick <= 0 {
		errs = append(errs, fmt.Errorf("%w: tick must be positive", ErrScene))
	}
	return errors.Join(errs...)
}

// MapTriangles returns the walkable triangles of the tile map. The map is
// centered on the origin, ramps climb along y.
func (s *Scene) MapTriangles() [][3]mgl64.Vec3 {
	rows := len(s.Tiles) / s.Width
	tile := func(i int, bottom, top float64) [][3]mgl64.Vec3 {
		x := float64(i%s.Width-s.Width/2) * s.TileSize
		y := float64(i/s.Width-rows/2) * s.TileSize
		a := mgl64.Vec3{x, y, bottom}
		b := mgl64.Vec3{x + s.TileSize, y, bottom}
		c := mgl64.Vec3{x, y + s.TileSize, top}
		d := mgl64.Vec3{x + s.TileSize, y + s.TileSize, top}
		return [][3]mgl64.Vec3{{a, b, c}, {b, c, d}}
	}

	var triangles [][3]mgl64.Vec3
	for i, code := range s.Tiles {
		switch code {
		case TileFloor:
			triangles = append(triangles, tile(i, 0, 0)...)
		case TileRampUp:
			triangles = append(triangles, tile(i, 0, s.Height)...)
		case TileRampDown:
			triangles = append(triangles, tile(i, s.Height, 0)...)
		case TilePlatform:
			triangles = append(triangles, tile(i, 0, 0)...)
			triangles = append(triangles, tile(i, s.Height, s.Height)...)
		}
	}
	return triangles
}

// PlatformTriangles returns the local triangles of the moving platform.
func (s *Scene) PlatformTriangles() [][3]mgl64.Vec3 {
	if s.Platform == nil {
		return nil
	}
	triangles := make([][3]mgl64.Vec3, len(s.Platform.Triangles))
	for i, t := range s.Platform.Triangles {
		triangles[i] = [3]mgl64.Vec3{t[0], t[1], t[2]}
	}
	return triangles
}

// PlatformOffset returns the translation of the platform at tick.
func (s *Scene) PlatformOffset(tick int) mgl64.Vec3 {
	if s.Platform == nil || (tick/s.Platform.Period)%2 == 0 {
		return mgl64.Vec3{}
	}
	return s.Platform.Offset
}

func SceneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scene",
		Short: "print the default scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), DefaultScene)
			return err
		},
	}
}
