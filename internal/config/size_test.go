package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize_Valid(t *testing.T) {
	tests := []struct {
		input  string
		width  int
		height int
	}{
		{"80x24", 80, 24},
		{"1x1", 1, 1},
		{"120X40", 120, 40},
		{"  60 x 20  ", 60, 20},
		{"999x999", 999, 999},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w, h, err := ParseSize(tt.input)
			require.NoError(t, err, "should parse %q", tt.input)
			assert.Equal(t, tt.width, w, "width should match")
			assert.Equal(t, tt.height, h, "height should match")
		})
	}
}

func TestParseSize_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no separator", "8024"},
		{"missing height", "80x"},
		{"missing width", "x24"},
		{"words", "widexhigh"},
		{"zero width", "0x24"},
		{"zero height", "80x0"},
		{"negative", "-80x24"},
		{"float", "80.5x24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseSize(tt.input)
			assert.Error(t, err, "should reject %q", tt.input)
		})
	}
}
