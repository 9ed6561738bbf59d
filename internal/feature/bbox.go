package feature

import "github.com/twpayne/go-geom"

// BBox is the minimal axis-aligned box enclosing a set of geometries,
// in the collection's spatial reference (X is longitude, Y latitude for
// EPSG:4326 data).
type BBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the X span of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the Y span of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Expand returns a copy grown by the given margin on every side.
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// Extent computes the bounding box of every geometry in the collection.
// The result does not depend on feature order. An empty collection yields
// the zero box.
func (c *Collection) Extent() BBox {
	if c.Len() == 0 {
		return BBox{}
	}
	bounds := geom.NewBounds(geom.XY)
	for _, f := range c.Features {
		if f.Geom == nil {
			continue
		}
		bounds = bounds.Extend(f.Geom)
	}
	return BBox{
		MinX: bounds.Min(0),
		MinY: bounds.Min(1),
		MaxX: bounds.Max(0),
		MaxY: bounds.Max(1),
	}
}
