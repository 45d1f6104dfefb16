package errors

import (
	"strings"
	"testing"
)

func TestValidateNodePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"SimplePath", "user", false},
		{"NestedPath", "user.address.city", false},
		{"ArrayIndexSegment", "tags.0", false},
		{"Empty", "", true},
		{"DoubledDot", "user..address", true},
		{"LeadingDot", ".user", true},
		{"TrailingDot", "user.", true},
		{"ControlCharacter", "user\x00name", true},
		{"Newline", "user\nname", true},
		{"TooLong", strings.Repeat("a", 501), true},
		{"MaxLength", strings.Repeat("a", 500), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"svg", "dot", "png", "json"}

	if err := ValidateOutputFormat("svg", supported); err != nil {
		t.Errorf("svg should be valid: %v", err)
	}
	if err := ValidateOutputFormat("gif", supported); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("gif should fail with INVALID_FORMAT, got %v", err)
	}
	if err := ValidateOutputFormat("", supported); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("empty format should fail with INVALID_FORMAT, got %v", err)
	}
}

func TestValidateEngine(t *testing.T) {
	supported := []string{"hierarchical", "force"}

	if err := ValidateEngine("force", supported); err != nil {
		t.Errorf("force should be valid: %v", err)
	}
	if err := ValidateEngine("circular", supported); !Is(err, ErrCodeInvalidEngine) {
		t.Errorf("circular should fail with INVALID_ENGINE, got %v", err)
	}
	if err := ValidateEngine("", supported); !Is(err, ErrCodeInvalidEngine) {
		t.Errorf("empty engine should fail with INVALID_ENGINE, got %v", err)
	}
}
