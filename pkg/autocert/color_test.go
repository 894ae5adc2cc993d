package autocert

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"Empty is black", "", "#000000", false},
		{"Hex", "#800080", "#800080", false},
		{"Components", "0.5,0,0.5", "#800080", false},
		{"Components with spaces", " 1, 0 , 0 ", "#ff0000", false},
		{"Out of range", "1.5,0,0", "", true},
		{"Negative", "-0.1,0,0", "", true},
		{"Two components", "0,0", "", true},
		{"Bad hex", "#zzzzzz", "", true},
		{"Bad hex length", "#12345", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("expected ErrInvalidColor, got %v", err)
				}
				return
			}
			if got.Hex() != tt.expected {
				t.Errorf("ParseColor(%q) = %s, expected %s", tt.input, got.Hex(), tt.expected)
			}
		})
	}
}
