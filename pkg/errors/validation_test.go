package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "a", false},
		{"numeric", "42", false},
		{"unicode", "узел-1", false},
		{"empty", "", true},
		{"too long", strings.Repeat("x", 257), true},
		{"max length", strings.Repeat("x", 256), false},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeMalformedGraph) {
				t.Errorf("ValidateNodeID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateGraphPath(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"graph.json", false},
		{"testdata/C4.JSON", false},
		{"/tmp/a/b.json", false},
		{"", true},
		{"   ", true},
		{"graph.yaml", true},
		{"graph", true},
		{"a\x00.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateGraphPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGraphPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateGraphPath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeMalformedGraph,
		ErrCodeUnknownAlgorithm,
		ErrCodeInvalidInput,
		ErrCodeInvalidConfig,
		ErrCodeFileNotFound,
		ErrCodeTooLarge,
		ErrCodeTimeout,
		ErrCodeCanceled,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
