package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/jsoncanvas/pkg/config"
)

func testConfig() config.Config {
	return config.Default()
}

func TestLoadJSONValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte(`{"user": {"name": "John"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	value, err := loadJSONValue(path)
	if err != nil {
		t.Fatalf("loadJSONValue: %v", err)
	}

	obj, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("value = %T, want map", value)
	}
	if _, ok := obj["user"]; !ok {
		t.Error("missing user key")
	}
}

func TestLoadJSONValueMissing(t *testing.T) {
	if _, err := loadJSONValue(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadJSONValueInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadJSONValue(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		ext    string
		want   string
	}{
		{"Explicit", "out.svg", "data.json", "svg", "out.svg"},
		{"Derived", "", "data.json", "svg", "data.svg"},
		{"DerivedCompound", "", "data.json", "graph.json", "data.graph.json"},
		{"Stdin", "", "-", "svg", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.ext); got != tt.want {
				t.Errorf("outputPath(%q, %q, %q) = %q, want %q",
					tt.output, tt.input, tt.ext, got, tt.want)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		input       string
		format      string
		formatCount int
		want        string
	}{
		{"SingleExplicit", "viz.svg", "data.json", "svg", 1, "viz.svg"},
		{"MultiBase", "viz", "data.json", "svg", 2, "viz.svg"},
		{"Derived", "", "data.json", "svg", 1, "data.svg"},
		{"NoInputClobber", "", "data.json", "json", 1, "data.layout.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPath(tt.output, tt.input, tt.format, tt.formatCount)
			if got != tt.want {
				t.Errorf("artifactPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); got != nil {
		t.Errorf("empty flag should return nil, got %v", got)
	}

	got := parseFormats("svg, dot,png")
	want := []string{"svg", "dot", "png"}
	if len(got) != len(want) {
		t.Fatalf("parseFormats = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("format[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatTypeCounts(t *testing.T) {
	got := formatTypeCounts(map[string]int{"object": 4, "array": 2, "string": 4})
	want := "object: 4, string: 4, array: 2"
	if got != want {
		t.Errorf("formatTypeCounts = %q, want %q", got, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Dir = "/tmp/custom-cache"

	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != "/tmp/custom-cache" {
		t.Errorf("dir = %q", dir)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := cacheDir(testConfig())
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("dir = %q", dir)
	}
}
