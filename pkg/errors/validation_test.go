package errors

import (
	"strings"
	"testing"
)

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr bool
	}{
		{"valid digraph", []byte("digraph { a -> b }"), false},
		{"empty", nil, true},
		{"whitespace only", []byte(" \n\t"), true},
		{"null byte", []byte("digraph { a\x00 -> b }"), true},
		{"too large", []byte(strings.Repeat("a", MaxSourceSize+1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSource(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDOT) {
				t.Errorf("ValidateSource() code = %v, want %v", GetCode(err), ErrCodeInvalidDOT)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "out/scene.svg", false},
		{"absolute", "/tmp/scene.png", false},
		{"dotted name", "a..b.svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 501), true},
		{"traversal", "../secret.svg", true},
		{"nested traversal", "out/../../x.svg", true},
		{"control char", "out\x01.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
