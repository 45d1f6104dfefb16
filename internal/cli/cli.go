package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/cache"
	"github.com/matzehuels/jsoncanvas/pkg/config"
	"github.com/matzehuels/jsoncanvas/pkg/pipeline"
)

// appName is used for cache directory resolution.
const appName = "jsoncanvas"

// =============================================================================
// Input / Output
// =============================================================================

// loadJSONValue reads and parses a JSON document. The path "-" reads stdin.
func loadJSONValue(path string) (any, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("parse JSON from %s: %w", path, err)
	}
	return value, nil
}

// nopCloser wraps a writer so stdout can satisfy io.WriteCloser.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// openOutput returns a writer for path, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// outputPath derives an output file path from an explicit output flag or the
// input filename with a new extension. A "-" input falls back to stdout ("").
func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	if input == "-" {
		return ""
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}

// =============================================================================
// Configuration & Cache Backend
// =============================================================================

// loadConfig reads the config file named by the persistent --config flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// cacheDir returns the default cache directory, respecting XDG_CACHE_HOME.
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newCacheBackend constructs the cache selected by the config. An unreachable
// redis backend degrades to the file cache with a warning rather than failing
// the run.
func newCacheBackend(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		c, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err == nil {
			return c, nil
		}
		printWarning("redis cache unavailable, falling back to file cache")
		fallthrough
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		return cache.NewFileCache(dir)
	}
}

// newRunner builds a pipeline runner wired to the configured cache backend
// and the context logger. Callers must Close the runner.
func newRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, error) {
	backend, err := newCacheBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, loggerFromContext(ctx)), nil
}

// pipelineOptions translates the config file into pipeline options.
// Flag handling in each command overrides individual fields afterwards.
func pipelineOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Engine:    cfg.Layout.Engine,
		Geometry:  cfg.GeometryOptions(),
		Sim:       cfg.SimOptions(),
		Curvature: cfg.Path.Curvature,
		Formats:   append([]string(nil), cfg.Render.Formats...),
	}
}
