package render

import (
	"image/color"

	"github.com/rotisserie/eris"
)

// Style describes how one layer is drawn. A zero-alpha color disables that
// part: fill-only, stroke-only, and fill+stroke layers are all expressed with
// the same struct.
type Style struct {
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
}

// HasFill reports whether the layer paints polygon interiors.
func (s Style) HasFill() bool { return s.Fill.A > 0 }

// HasStroke reports whether the layer paints polygon outlines.
func (s Style) HasStroke() bool { return s.Stroke.A > 0 && s.StrokeWidth > 0 }

// ParseHexColor parses #RGB, #RRGGBB, or #RRGGBBAA into an NRGBA color.
func ParseHexColor(s string) (color.NRGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.NRGBA{}, eris.Errorf("render: color %q must start with '#'", s)
	}
	hex := s[1:]

	nib := func(c byte) (uint8, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, true
		}
		return 0, false
	}
	byteAt := func(i int) (uint8, bool) {
		hi, ok1 := nib(hex[i])
		lo, ok2 := nib(hex[i+1])
		return hi<<4 | lo, ok1 && ok2
	}

	c := color.NRGBA{A: 0xff}
	switch len(hex) {
	case 3:
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			n, ok := nib(hex[i])
			if !ok {
				return color.NRGBA{}, eris.Errorf("render: invalid hex color %q", s)
			}
			*dst = n<<4 | n
		}
	case 6, 8:
		parts := []*uint8{&c.R, &c.G, &c.B, &c.A}
		for i := 0; i*2 < len(hex); i++ {
			b, ok := byteAt(i * 2)
			if !ok {
				return color.NRGBA{}, eris.Errorf("render: invalid hex color %q", s)
			}
			*parts[i] = b
		}
	default:
		return color.NRGBA{}, eris.Errorf("render: invalid hex color length %q", s)
	}
	return c, nil
}
