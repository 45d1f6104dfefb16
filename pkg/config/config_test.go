package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/jsoncanvas/pkg/errors"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Layout.Engine != layout.EngineHierarchical {
		t.Errorf("default engine = %q", cfg.Layout.Engine)
	}
	if cfg.Layout.NodeSpacing != layout.DefaultNodeSpacing {
		t.Errorf("node spacing = %v", cfg.Layout.NodeSpacing)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jsoncanvas.toml")
	content := `
[layout]
engine = "force"
level_spacing = 300

[force]
max_iterations = 120

[render]
formats = ["svg", "dot"]

[cache]
backend = "none"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Layout.Engine != layout.EngineForce {
		t.Errorf("engine = %q, want force", cfg.Layout.Engine)
	}
	if cfg.Layout.LevelSpacing != 300 {
		t.Errorf("level spacing = %v, want 300", cfg.Layout.LevelSpacing)
	}
	// Untouched fields keep their defaults.
	if cfg.Layout.NodeWidth != layout.DefaultNodeWidth {
		t.Errorf("node width = %v, want default", cfg.Layout.NodeWidth)
	}
	if cfg.Force.MaxIterations != 120 {
		t.Errorf("max iterations = %d, want 120", cfg.Force.MaxIterations)
	}
	if len(cfg.Render.Formats) != 2 {
		t.Errorf("formats = %v", cfg.Render.Formats)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadMissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{
			name:    "BadTOML",
			content: "[layout\nengine=",
			code:    errors.ErrCodeInvalidConfig,
		},
		{
			name:    "UnknownEngine",
			content: "[layout]\nengine = \"circular\"",
			code:    errors.ErrCodeInvalidEngine,
		},
		{
			name:    "UnknownBackend",
			content: "[cache]\nbackend = \"memcached\"",
			code:    errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "jsoncanvas.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGeometryOptions(t *testing.T) {
	cfg := Default()
	cfg.Layout.LevelSpacing = 250

	geo := cfg.GeometryOptions()
	if geo.LevelSpacing != 250 || geo.NodeWidth != layout.DefaultNodeWidth {
		t.Errorf("geometry = %+v", geo)
	}
}
