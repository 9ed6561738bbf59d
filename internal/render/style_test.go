package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ffffff", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#c9dced", color.NRGBA{0xc9, 0xdc, 0xed, 0xff}},
		{"#5B5B5B", color.NRGBA{0x5b, 0x5b, 0x5b, 0xff}},
		{"#00000080", color.NRGBA{0x00, 0x00, 0x00, 0x80}},
		{"#f0a", color.NRGBA{0xff, 0x00, 0xaa, 0xff}},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, in := range []string{"", "ffffff", "#ffff", "#gggggg", "#12345"} {
		_, err := ParseHexColor(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestStylePredicates(t *testing.T) {
	fill := Style{Fill: color.NRGBA{A: 0xff}}
	assert.True(t, fill.HasFill())
	assert.False(t, fill.HasStroke())

	outline := Style{Stroke: color.NRGBA{A: 0xff}, StrokeWidth: 1.5}
	assert.False(t, outline.HasFill())
	assert.True(t, outline.HasStroke())

	// Stroke color without width draws nothing.
	zeroWidth := Style{Stroke: color.NRGBA{A: 0xff}}
	assert.False(t, zeroWidth.HasStroke())
}
