package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"golang.org/x/image/vector"
)

// Render draws the plan onto a fresh canvas. The plan is validated first, so
// a bad layer stack never produces a silently wrong image.
func Render(p Plan) (*image.NRGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	bg := p.Background
	if bg.A == 0 {
		bg = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	proj := newProjector(p.Extent, p.Width, p.Height)

	for _, layer := range p.Layers {
		drawLayer(img, proj, layer)
	}

	if len(p.Labels) > 0 {
		if err := drawLabels(img, proj, p); err != nil {
			return nil, err
		}
	}

	return img, nil
}

// WritePNG encodes the image to the given path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "render: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := png.Encode(f, img); err != nil {
		return eris.Wrapf(err, "render: encode %s", path)
	}
	return nil
}

func drawLayer(img *image.NRGBA, proj projector, layer Layer) {
	log := zap.L().With(zap.String("component", "render"), zap.String("layer", layer.Name))

	var skipped int
	for _, f := range layer.FC.Features {
		polys := polygonsOf(f.Geom)
		if polys == nil {
			skipped++
			continue
		}
		for _, poly := range polys {
			if layer.Style.HasFill() {
				fillPolygon(img, proj, poly, layer.Style.Fill)
			}
			if layer.Style.HasStroke() {
				strokePolygon(img, proj, poly, layer.Style.Stroke, layer.Style.StrokeWidth)
			}
		}
	}
	if skipped > 0 {
		log.Debug("skipped non-polygon features", zap.Int("skipped", skipped))
	}
}

// polygonsOf flattens the polygon geometries a layer can carry. Points and
// other types have no area to paint.
func polygonsOf(g geom.T) []*geom.Polygon {
	switch gg := g.(type) {
	case *geom.Polygon:
		return []*geom.Polygon{gg}
	case *geom.MultiPolygon:
		polys := make([]*geom.Polygon, 0, gg.NumPolygons())
		for i := 0; i < gg.NumPolygons(); i++ {
			polys = append(polys, gg.Polygon(i))
		}
		return polys
	default:
		return nil
	}
}

// fillPolygon paints the polygon interior. All rings go into one rasterizer
// path; holes cancel the exterior through winding.
func fillPolygon(img *image.NRGBA, proj projector, poly *geom.Polygon, c color.NRGBA) {
	z := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	z.DrawOp = draw.Over

	for r := 0; r < poly.NumLinearRings(); r++ {
		addRing(z, proj, poly.LinearRing(r))
	}

	z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

func addRing(z *vector.Rasterizer, proj projector, ring *geom.LinearRing) {
	coords := ring.FlatCoords()
	stride := ring.Stride()
	n := len(coords) / stride
	if n < 3 {
		return
	}
	x, y := proj.point(coords[0], coords[1])
	z.MoveTo(x, y)
	for i := 1; i < n; i++ {
		x, y = proj.point(coords[i*stride], coords[i*stride+1])
		z.LineTo(x, y)
	}
	z.ClosePath()
}

// strokePolygon draws the polygon boundary as a chain of segment quads. The
// rasterizer has no stroking, so each segment becomes a width-wide rectangle
// along its direction; shared endpoints keep joints visually closed at the
// widths used for county outlines.
func strokePolygon(img *image.NRGBA, proj projector, poly *geom.Polygon, c color.NRGBA, width float64) {
	if width <= 0 {
		return
	}
	half := float32(width / 2)
	z := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	z.DrawOp = draw.Over

	for r := 0; r < poly.NumLinearRings(); r++ {
		ring := poly.LinearRing(r)
		coords := ring.FlatCoords()
		stride := ring.Stride()
		n := len(coords) / stride
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			x0, y0 := proj.point(coords[i*stride], coords[i*stride+1])
			x1, y1 := proj.point(coords[j*stride], coords[j*stride+1])
			addSegmentQuad(z, x0, y0, x1, y1, half)
		}
	}

	z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

func addSegmentQuad(z *vector.Rasterizer, x0, y0, x1, y1, half float32) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Unit normal, scaled to half the stroke width.
	nx := float32(-dy/length) * half
	ny := float32(dx/length) * half

	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}
