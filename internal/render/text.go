package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// newFace builds a Go Regular face at the given point size.
func newFace(size float64) (font.Face, error) {
	if size <= 0 {
		size = 14
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, eris.Wrap(err, "render: parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, eris.Wrap(err, "render: build font face")
	}
	return face, nil
}

func drawLabels(img *image.NRGBA, proj projector, p Plan) error {
	face, err := newFace(p.FontSize)
	if err != nil {
		return err
	}
	defer face.Close() //nolint:errcheck

	c := p.LabelColor
	if c.A == 0 {
		c = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	}

	for _, lbl := range p.Labels {
		if strings.TrimSpace(lbl.Text) == "" {
			continue
		}
		x, y := proj.point(lbl.X, lbl.Y)
		drawMultiline(img, face, c, lbl.Text, x, y)
	}
	return nil
}

// drawMultiline centers each line of text horizontally on the anchor and
// stacks the lines so the block's vertical center sits on the anchor too.
func drawMultiline(img *image.NRGBA, face font.Face, c color.NRGBA, text string, x, y float32) {
	lines := strings.Split(text, "\n")
	metrics := face.Metrics()
	lineHeight := metrics.Height
	blockHeight := lineHeight.Mul(fixed.I(len(lines)))

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}

	// First baseline: anchor minus half the block, plus one ascent.
	baseline := fixed.Int26_6(y*64) - blockHeight/2 + metrics.Ascent

	for _, line := range lines {
		w := d.MeasureString(line)
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(x*64) - w/2,
			Y: baseline,
		}
		d.DrawString(line)
		baseline += lineHeight
	}
}
