package arcgis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

// cw is a clockwise (exterior, Y-up) square ring.
func cw(x, y, size float64) [][]float64 {
	return [][]float64{
		{x, y},
		{x, y + size},
		{x + size, y + size},
		{x + size, y},
		{x, y},
	}
}

// ccw is a counterclockwise (hole) square ring.
func ccw(x, y, size float64) [][]float64 {
	return [][]float64{
		{x, y},
		{x + size, y},
		{x + size, y + size},
		{x, y + size},
		{x, y},
	}
}

func TestParseEsriJSONPoint(t *testing.T) {
	payload := `{"features":[{"attributes":{"NAME":"Olympia"},"geometry":{"x":-122.9,"y":47.04}}]}`

	feats, exceeded, err := parseEsriJSON([]byte(payload), 4326)
	require.NoError(t, err)
	assert.False(t, exceeded)
	require.Len(t, feats, 1)

	pt, ok := feats[0].Geom.(*geom.Point)
	require.True(t, ok)
	assert.InDelta(t, -122.9, pt.X(), 1e-9)
	assert.InDelta(t, 47.04, pt.Y(), 1e-9)
	assert.Equal(t, "Olympia", feats[0].StringAttr("NAME"))
}

func TestParseEsriJSONPolygon(t *testing.T) {
	payload := `{
		"features":[{
			"attributes":{"NAME":"Whatcom"},
			"geometry":{"rings":[[[-122,48],[-122,49],[-121,49],[-121,48],[-122,48]]]}
		}],
		"exceededTransferLimit":true
	}`

	feats, exceeded, err := parseEsriJSON([]byte(payload), 4326)
	require.NoError(t, err)
	assert.True(t, exceeded)
	require.Len(t, feats, 1)

	mp, ok := feats[0].Geom.(*geom.MultiPolygon)
	require.True(t, ok)
	assert.Equal(t, 1, mp.NumPolygons())
}

func TestParseEsriJSONErrorEnvelope(t *testing.T) {
	payload := `{"error":{"code":400,"message":"Invalid where clause"}}`

	_, _, err := parseEsriJSON([]byte(payload), 4326)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Invalid where clause")
}

func TestParseEsriJSONMissingGeometry(t *testing.T) {
	payload := `{"features":[{"attributes":{"NAME":"nowhere"}}]}`

	_, _, err := parseEsriJSON([]byte(payload), 4326)
	assert.Error(t, err)
}

func TestRingsToMultiPolygonExteriorsAndHoles(t *testing.T) {
	// Two exteriors, the first with a hole.
	rings := [][][]float64{
		cw(0, 0, 10),
		ccw(2, 2, 2),
		cw(20, 0, 5),
	}

	mp, err := ringsToMultiPolygon(rings, 4326)
	require.NoError(t, err)

	require.Equal(t, 2, mp.NumPolygons())
	assert.Equal(t, 2, mp.Polygon(0).NumLinearRings())
	assert.Equal(t, 1, mp.Polygon(1).NumLinearRings())
}

func TestRingsToMultiPolygonSkipsDegenerateRings(t *testing.T) {
	rings := [][][]float64{
		{{0, 0}, {1, 1}},
		cw(0, 0, 1),
	}

	mp, err := ringsToMultiPolygon(rings, 4326)
	require.NoError(t, err)
	assert.Equal(t, 1, mp.NumPolygons())
}

func TestRingsToMultiPolygonNoValidRings(t *testing.T) {
	_, err := ringsToMultiPolygon([][][]float64{{{0, 0}}}, 4326)
	assert.Error(t, err)
}

func TestSignedArea(t *testing.T) {
	// Counterclockwise unit square has positive area.
	flat := []float64{0, 0, 1, 0, 1, 1, 0, 1}
	assert.InDelta(t, 1.0, signedArea(flat), 1e-9)

	// Clockwise winding flips the sign.
	flat = []float64{0, 0, 0, 1, 1, 1, 1, 0}
	assert.InDelta(t, -1.0, signedArea(flat), 1e-9)
}
