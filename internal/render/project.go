package render

import "github.com/cartokit/chorogen/internal/feature"

// projector maps data coordinates (X east, Y north) onto the pixel grid
// (origin top-left, Y down), preserving aspect ratio and centering the extent
// on the canvas.
type projector struct {
	box   feature.BBox
	scale float64
	offX  float64
	offY  float64
}

func newProjector(box feature.BBox, width, height int) projector {
	sx := float64(width) / box.Width()
	sy := float64(height) / box.Height()
	scale := sx
	if sy < sx {
		scale = sy
	}
	return projector{
		box:   box,
		scale: scale,
		offX:  (float64(width) - scale*box.Width()) / 2,
		offY:  (float64(height) - scale*box.Height()) / 2,
	}
}

func (p projector) point(x, y float64) (float32, float32) {
	px := p.offX + (x-p.box.MinX)*p.scale
	py := p.offY + (p.box.MaxY-y)*p.scale
	return float32(px), float32(py)
}
