// Package config loads jsoncanvas settings from a TOML file.
//
// Configuration is optional: every field has a default, and CLI flags
// override whatever the file provides. The file is looked up as
// jsoncanvas.toml in the working directory unless a path is given.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jsoncanvas/pkg/errors"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
	"github.com/matzehuels/jsoncanvas/pkg/layout/force"
	"github.com/matzehuels/jsoncanvas/pkg/linkpath"
)

// DefaultFile is the config filename probed in the working directory.
const DefaultFile = "jsoncanvas.toml"

// Config is the full application configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Force  ForceConfig  `toml:"force"`
	Path   PathConfig   `toml:"path"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig covers the geometry shared by both engines.
type LayoutConfig struct {
	Engine       string  `toml:"engine"`
	NodeWidth    float64 `toml:"node_width"`
	NodeHeight   float64 `toml:"node_height"`
	HeaderHeight float64 `toml:"header_height"`
	RowHeight    float64 `toml:"row_height"`
	PaddingLeft  float64 `toml:"padding_left"`
	PaddingTop   float64 `toml:"padding_top"`
	NodeSpacing  float64 `toml:"node_spacing"`
	LevelSpacing float64 `toml:"level_spacing"`
}

// ForceConfig covers the force-simulation tuning.
type ForceConfig struct {
	Width                float64 `toml:"width"`
	Height               float64 `toml:"height"`
	MaxIterations        int     `toml:"max_iterations"`
	ConvergenceThreshold float64 `toml:"convergence_threshold"`
	Seed                 int64   `toml:"seed"`
}

// PathConfig covers link path rendering.
type PathConfig struct {
	Curvature float64 `toml:"curvature"`
}

// RenderConfig covers artifact generation.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Output  string   `toml:"output"`
}

// CacheConfig selects and locates the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // "file", "redis", or "none"
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	geo := layout.DefaultOptions()
	return Config{
		Layout: LayoutConfig{
			Engine:       layout.EngineHierarchical,
			NodeWidth:    geo.NodeWidth,
			NodeHeight:   geo.NodeHeight,
			HeaderHeight: geo.HeaderHeight,
			RowHeight:    geo.RowHeight,
			PaddingLeft:  geo.PaddingLeft,
			PaddingTop:   geo.PaddingTop,
			NodeSpacing:  geo.NodeSpacing,
			LevelSpacing: geo.LevelSpacing,
		},
		Force: ForceConfig{
			Width:                force.DefaultWidth,
			Height:               force.DefaultHeight,
			MaxIterations:        force.DefaultMaxIterations,
			ConvergenceThreshold: force.DefaultConvergenceThreshold,
			Seed:                 force.DefaultSeed,
		},
		Path: PathConfig{
			Curvature: linkpath.DefaultCurvature,
		},
		Render: RenderConfig{
			Formats: []string{"svg"},
			Output:  ".",
		},
		Cache: CacheConfig{
			Backend: "file",
		},
	}
}

// Load reads a TOML config file and overlays it on the defaults. A missing
// file at the default location is not an error; an explicitly named file
// must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := errors.ValidateEngine(c.Layout.Engine,
		[]string{layout.EngineHierarchical, layout.EngineForce}); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Force.MaxIterations < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "force.max_iterations must be positive")
	}
	return nil
}

// GeometryOptions converts the layout section to engine options.
func (c Config) GeometryOptions() layout.Options {
	return layout.Options{
		NodeWidth:    c.Layout.NodeWidth,
		NodeHeight:   c.Layout.NodeHeight,
		HeaderHeight: c.Layout.HeaderHeight,
		RowHeight:    c.Layout.RowHeight,
		PaddingLeft:  c.Layout.PaddingLeft,
		PaddingTop:   c.Layout.PaddingTop,
		NodeSpacing:  c.Layout.NodeSpacing,
		LevelSpacing: c.Layout.LevelSpacing,
	}
}

// SimOptions converts the force section to simulation options.
func (c Config) SimOptions() force.Options {
	return force.Options{
		Width:                c.Force.Width,
		Height:               c.Force.Height,
		MaxIterations:        c.Force.MaxIterations,
		ConvergenceThreshold: c.Force.ConvergenceThreshold,
		Seed:                 c.Force.Seed,
		Geometry:             c.GeometryOptions(),
	}
}
