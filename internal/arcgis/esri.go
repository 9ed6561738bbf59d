package arcgis

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/cartokit/chorogen/internal/feature"
)

// esriResponse is the Esri JSON (f=json) envelope for a layer query.
// The error member is also returned with HTTP 200 on bad queries, so it is
// checked on every payload.
type esriResponse struct {
	Error                 *esriError    `json:"error"`
	Features              []esriFeature `json:"features"`
	ExceededTransferLimit bool          `json:"exceededTransferLimit"`
}

type esriError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type esriFeature struct {
	Attributes map[string]any `json:"attributes"`
	Geometry   *esriGeometry  `json:"geometry"`
}

// esriGeometry covers the point and polygon shapes FeatureServer layers
// return; only one member is populated per feature.
type esriGeometry struct {
	X     *float64      `json:"x"`
	Y     *float64      `json:"y"`
	Rings [][][]float64 `json:"rings"`
}

// parseEsriJSON decodes an Esri JSON payload into features.
func parseEsriJSON(data []byte, srid int) ([]feature.Feature, bool, error) {
	var resp esriResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false, eris.Wrap(err, "arcgis: parse esri json")
	}
	if resp.Error != nil {
		return nil, false, eris.Errorf("arcgis: server error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	out := make([]feature.Feature, 0, len(resp.Features))
	for i, ef := range resp.Features {
		g, err := ef.Geometry.toGeom(srid)
		if err != nil {
			return nil, false, eris.Wrapf(err, "arcgis: feature %d", i)
		}
		attrs := ef.Attributes
		if attrs == nil {
			attrs = map[string]any{}
		}
		out = append(out, feature.Feature{Geom: g, Attrs: attrs})
	}
	return out, resp.ExceededTransferLimit, nil
}

func (g *esriGeometry) toGeom(srid int) (geom.T, error) {
	if g == nil {
		return nil, eris.New("missing geometry")
	}
	if g.X != nil && g.Y != nil {
		return geom.NewPointFlat(geom.XY, []float64{*g.X, *g.Y}).SetSRID(srid), nil
	}
	if len(g.Rings) > 0 {
		return ringsToMultiPolygon(g.Rings, srid)
	}
	return nil, eris.New("unsupported geometry")
}

// ringsToMultiPolygon groups Esri rings into polygons. Esri JSON does not
// nest rings: clockwise rings are exteriors, counterclockwise rings are holes
// belonging to the preceding exterior.
func ringsToMultiPolygon(rings [][][]float64, srid int) (*geom.MultiPolygon, error) {
	mp := geom.NewMultiPolygon(geom.XY).SetSRID(srid)
	var current *geom.Polygon

	flush := func() error {
		if current == nil {
			return nil
		}
		return mp.Push(current)
	}

	for _, ring := range rings {
		if len(ring) < 4 {
			continue
		}
		flat := make([]float64, 0, len(ring)*2)
		for _, pt := range ring {
			if len(pt) < 2 {
				return nil, eris.New("arcgis: ring vertex with fewer than 2 coordinates")
			}
			flat = append(flat, pt[0], pt[1])
		}
		lr := geom.NewLinearRingFlat(geom.XY, flat)

		if signedArea(flat) <= 0 || current == nil {
			// Clockwise exterior (negative signed area in a Y-up frame)
			// starts a new polygon. A leading hole with no exterior is
			// treated as an exterior rather than dropped.
			if err := flush(); err != nil {
				return nil, eris.Wrap(err, "arcgis: push polygon")
			}
			current = geom.NewPolygon(geom.XY)
		}
		if err := current.Push(lr); err != nil {
			return nil, eris.Wrap(err, "arcgis: push ring")
		}
	}
	if err := flush(); err != nil {
		return nil, eris.Wrap(err, "arcgis: push polygon")
	}
	if mp.NumPolygons() == 0 {
		return nil, eris.New("arcgis: no valid rings")
	}
	return mp, nil
}

// signedArea is the shoelace sum over a flat XY ring: positive for
// counterclockwise rings.
func signedArea(flat []float64) float64 {
	var sum float64
	n := len(flat) / 2
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += flat[2*i]*flat[2*j+1] - flat[2*j]*flat[2*i+1]
	}
	return sum / 2
}
