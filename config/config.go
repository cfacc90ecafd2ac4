// Package config holds the settings of a navigation world, loaded from TOML.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/akmonengine/navmesh/mesh"
	"github.com/akmonengine/navmesh/navmesh"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	ErrInvalid    = errors.New("config: invalid value")
	ErrUnknownKey = errors.New("config: unknown key")
)

type Log struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type Config struct {
	// MergeTolerance is the component-wise distance under which two submitted
	// points become the same vertex.
	MergeTolerance float64 `toml:"merge_tolerance"`
	// GridCells is the number of hash buckets of the vertex pool.
	GridCells int    `toml:"grid_cells"`
	QueryMode string `toml:"query_mode"`
	PathMode  string `toml:"path_mode"`
	Workers   int    `toml:"workers"`
	// ClearPathOnFailure empties the path of an agent whose destination is
	// unreachable instead of keeping the last known one.
	ClearPathOnFailure bool `toml:"clear_path_on_failure"`
	// CompactRatio is the share of orphaned vertices above which the vertex
	// pool is compacted. Zero disables compaction.
	CompactRatio float64 `toml:"compact_ratio"`
	Log          Log     `toml:"log"`
}

func Default() Config {
	return Config{
		MergeTolerance: mesh.DefaultTolerance,
		GridCells:      mesh.DefaultGridCells,
		QueryMode:      navmesh.QueryAccuracy.String(),
		PathMode:       navmesh.PathMidPoints.String(),
		Workers:        1,
		CompactRatio:   0.5,
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path over the default configuration and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s in %s", ErrUnknownKey, strings.Join(keys, ", "), path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field of the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.MergeTolerance <= 0 {
		errs = append(errs, fmt.Errorf("%w: merge_tolerance must be positive, got %v", ErrInvalid, c.MergeTolerance))
	}
	if c.GridCells <= 0 {
		errs = append(errs, fmt.Errorf("%w: grid_cells must be positive, got %d", ErrInvalid, c.GridCells))
	}
	if _, err := ParseQueryMode(c.QueryMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParsePathMode(c.PathMode); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers))
	}
	if c.CompactRatio < 0 || c.CompactRatio > 1 {
		errs = append(errs, fmt.Errorf("%w: compact_ratio must be within [0, 1], got %v", ErrInvalid, c.CompactRatio))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %v", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

func ParseQueryMode(s string) (navmesh.QueryMode, error) {
	switch strings.ToLower(s) {
	case "closest":
		return navmesh.QueryClosest, nil
	case "accuracy":
		return navmesh.QueryAccuracy, nil
	}
	return 0, fmt.Errorf("%w: query_mode %q, want closest or accuracy", ErrInvalid, s)
}

func ParsePathMode(s string) (navmesh.PathMode, error) {
	switch strings.ToLower(s) {
	case "midpoints":
		return navmesh.PathMidPoints, nil
	case "accuracy":
		return navmesh.PathAccuracy, nil
	}
	return 0, fmt.Errorf("%w: path_mode %q, want midpoints or accuracy", ErrInvalid, s)
}

// Logger builds the zap logger described by the Log section.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
