package feature

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Centroids derives a parallel collection of point features, one per input
// feature, placed at the area-weighted centroid of each geometry. Attribute
// tables are carried over from the source features unchanged (same map, not a
// copy). The area-weighted centroid keeps labels meaningfully inside
// non-convex shapes where a bounding-box center would drift outside.
func (c *Collection) Centroids() (*Collection, error) {
	out := NewCollection(c.SRID)
	for i, f := range c.Features {
		coord, err := centroid(f.Geom)
		if err != nil {
			return nil, eris.Wrapf(err, "feature: centroid of feature %d", i)
		}
		pt := geom.NewPointFlat(geom.XY, []float64{coord[0], coord[1]}).SetSRID(c.SRID)
		out.Append(Feature{Geom: pt, Attrs: f.Attrs})
	}
	return out, nil
}

func centroid(g geom.T) (geom.Coord, error) {
	switch gg := g.(type) {
	case nil:
		return nil, eris.New("feature: nil geometry")
	case *geom.Point:
		return gg.Coords(), nil
	case *geom.Polygon:
		return xy.PolygonsCentroid(gg), nil
	case *geom.MultiPolygon:
		calc := xy.NewAreaCentroidCalculator(gg.Layout())
		for i := 0; i < gg.NumPolygons(); i++ {
			calc.AddPolygon(gg.Polygon(i))
		}
		return calc.GetCentroid(), nil
	default:
		return nil, eris.Errorf("feature: unsupported geometry type %T", g)
	}
}
