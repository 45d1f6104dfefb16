package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Document - Serializable Layout Result
// =============================================================================

// Document is the serialization format for a computed layout: the engine
// that produced it, the canvas dimensions, the positioned nodes, and the
// curved link paths keyed by "sourceId-targetId".
type Document struct {
	Engine string  `json:"engine"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Nodes []PositionedNode  `json:"nodes"`
	Paths map[string]string `json:"paths,omitempty"`
}

// MarshalDocument serializes a layout document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument deserializes JSON bytes into a Document and validates
// the engine discriminator. A missing engine defaults to hierarchical.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if d.Engine == "" {
		d.Engine = EngineHierarchical
	}
	if d.Engine != EngineHierarchical && d.Engine != EngineForce {
		return Document{}, fmt.Errorf("unknown layout engine %q", d.Engine)
	}
	return d, nil
}

// WriteDocumentFile writes a layout document to a JSON file.
func WriteDocumentFile(d Document, path string) error {
	data, err := MarshalDocument(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDocumentFile reads a layout document from a JSON file.
func ReadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDocument(data)
}
