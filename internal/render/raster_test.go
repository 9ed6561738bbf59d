package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartokit/chorogen/internal/feature"
)

func TestProjectorCentersAndInvertsY(t *testing.T) {
	box := feature.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	proj := newProjector(box, 100, 100)

	// Bottom-left of the data space lands at the bottom-left pixel corner.
	x, y := proj.point(0, 0)
	assert.InDelta(t, 0, x, 0.001)
	assert.InDelta(t, 100, y, 0.001)

	// Top-right lands at the top-right.
	x, y = proj.point(10, 10)
	assert.InDelta(t, 100, x, 0.001)
	assert.InDelta(t, 0, y, 0.001)

	// Center maps to center.
	x, y = proj.point(5, 5)
	assert.InDelta(t, 50, x, 0.001)
	assert.InDelta(t, 50, y, 0.001)
}

func TestProjectorPreservesAspect(t *testing.T) {
	// Wide extent on a square canvas gets letterboxed vertically.
	box := feature.BBox{MinX: 0, MinY: 0, MaxX: 20, MaxY: 10}
	proj := newProjector(box, 100, 100)

	_, yTop := proj.point(0, 10)
	_, yBottom := proj.point(0, 0)
	assert.InDelta(t, 25, yTop, 0.001)
	assert.InDelta(t, 75, yBottom, 0.001)
}

func TestRenderFillsInterior(t *testing.T) {
	fillColor := color.NRGBA{R: 0x10, G: 0x80, B: 0x10, A: 0xff}
	fc := squareCollection(0, 0, 10)

	p := Plan{
		Layers: []Layer{
			{Name: "fill", FC: fc, Style: Style{Fill: fillColor}},
			{Name: "outline", FC: fc, Style: outlineStyle()},
		},
		Extent:     feature.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		Width:      100,
		Height:     100,
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}

	img, err := Render(p)
	require.NoError(t, err)

	// Center of the square is the fill color.
	assert.Equal(t, fillColor, img.NRGBAAt(50, 50))
}

func TestRenderBackgroundOutsideExtent(t *testing.T) {
	bg := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	fc := squareCollection(4, 4, 2)

	p := Plan{
		Layers: []Layer{
			{Name: "outline", FC: fc, Style: outlineStyle()},
		},
		Extent:     feature.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		Width:      100,
		Height:     100,
		Background: bg,
	}

	img, err := Render(p)
	require.NoError(t, err)

	// A corner pixel far from the small square keeps the background.
	assert.Equal(t, bg, img.NRGBAAt(2, 2))
	// The square's interior is not filled by an outline-only layer.
	assert.Equal(t, bg, img.NRGBAAt(50, 50))
	// Its boundary is stroked.
	assert.NotEqual(t, bg, img.NRGBAAt(40, 50))
}

func TestRenderHonorsLayerOrder(t *testing.T) {
	under := color.NRGBA{R: 0xff, A: 0xff}
	over := color.NRGBA{B: 0xff, A: 0xff}
	fc := squareCollection(0, 0, 10)

	p := Plan{
		Layers: []Layer{
			{Name: "under", FC: fc, Style: Style{Fill: under}},
			{Name: "over", FC: fc, Style: Style{Fill: over}},
			{Name: "outline", FC: fc, Style: outlineStyle()},
		},
		Extent: feature.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		Width:  80,
		Height: 80,
	}

	img, err := Render(p)
	require.NoError(t, err)
	assert.Equal(t, over, img.NRGBAAt(40, 40))
}

func TestRenderInvalidPlan(t *testing.T) {
	p := validPlan()
	p.Layers = p.Layers[:1] // fill on top

	_, err := Render(p)
	assert.Error(t, err)
}

func TestRenderWithLabels(t *testing.T) {
	labelColor := color.NRGBA{A: 0xff}
	fc := squareCollection(0, 0, 10)

	p := Plan{
		Layers: []Layer{
			{Name: "fill", FC: fc, Style: Style{Fill: color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}}},
			{Name: "outline", FC: fc, Style: outlineStyle()},
		},
		Labels: []Label{
			{Text: "San\nJuan", X: 5, Y: 5},
		},
		Extent:     feature.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		Width:      200,
		Height:     200,
		FontSize:   24,
		LabelColor: labelColor,
	}

	img, err := Render(p)
	require.NoError(t, err)

	// Some pixel near the anchor carries label ink.
	found := false
	for dy := -30; dy <= 30 && !found; dy++ {
		for dx := -40; dx <= 40 && !found; dx++ {
			c := img.NRGBAAt(100+dx, 100+dy)
			if c.R < 0x80 && c.G < 0x80 && c.B < 0x80 {
				found = true
			}
		}
	}
	assert.True(t, found, "no label pixels drawn near anchor")
}

func TestWritePNG(t *testing.T) {
	img, err := Render(validPlan())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "map.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, WritePNG(path, img))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
