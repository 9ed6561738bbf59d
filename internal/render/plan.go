// Package render turns feature collections into a static raster map: an
// ordered stack of fill/outline layers cropped to a bounding box, with text
// labels drawn last.
package render

import (
	"image/color"

	"github.com/rotisserie/eris"

	"github.com/cartokit/chorogen/internal/feature"
)

// Layer is one draw operation: a collection painted with a style. Layers are
// drawn in slice order, later over earlier.
type Layer struct {
	Name  string
	FC    *feature.Collection
	Style Style
}

// Label is one text label anchored at a data-space point (offset already
// applied). Text may contain newlines; lines are centered on the anchor.
type Label struct {
	Text string
	X    float64
	Y    float64
}

// Plan is the full set of draw instructions for one map. Layer order is
// explicit so the outline-on-top requirement is checkable rather than an
// accident of call order.
type Plan struct {
	Layers []Layer
	Labels []Label

	Extent     feature.BBox
	Width      int
	Height     int
	Background color.NRGBA

	FontSize   float64
	LabelColor color.NRGBA
}

// Validate checks the plan's structural invariants before any drawing:
// a usable canvas and extent, and a stroke-only topmost layer. Fills drawn
// over the primary outline would visually erase shared boundaries, so the
// outline layer must come last.
func (p Plan) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return eris.Errorf("render: invalid canvas %dx%d", p.Width, p.Height)
	}
	if p.Extent.Width() <= 0 || p.Extent.Height() <= 0 {
		return eris.New("render: degenerate extent")
	}
	if len(p.Layers) == 0 {
		return eris.New("render: no layers")
	}
	for i, l := range p.Layers {
		if l.FC == nil || l.FC.Len() == 0 {
			return eris.Errorf("render: layer %d (%s) is empty", i, l.Name)
		}
		if !l.Style.HasFill() && !l.Style.HasStroke() {
			return eris.Errorf("render: layer %d (%s) draws nothing", i, l.Name)
		}
	}

	top := p.Layers[len(p.Layers)-1]
	if top.Style.HasFill() {
		return eris.Errorf("render: topmost layer %s has a fill; outlines must be the topmost non-label layer", top.Name)
	}
	if !top.Style.HasStroke() {
		return eris.Errorf("render: topmost layer %s has no stroke", top.Name)
	}
	return nil
}
