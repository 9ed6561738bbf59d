package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestCentroidsOnePointPerPolygon(t *testing.T) {
	c := namedSquares("Adams", "Asotin", "Benton")

	pts, err := c.Centroids()
	require.NoError(t, err)
	require.Equal(t, c.Len(), pts.Len())

	for i, f := range pts.Features {
		_, ok := f.Geom.(*geom.Point)
		assert.True(t, ok, "feature %d is not a point", i)
		// Attributes are carried over unchanged.
		assert.Equal(t, c.Features[i].Attrs, f.Attrs)
	}
}

func TestCentroidOfSquare(t *testing.T) {
	c := NewCollection(4326)
	c.Append(Feature{Geom: square(10, 20, 2), Attrs: map[string]any{"NAME": "Grant"}})

	pts, err := c.Centroids()
	require.NoError(t, err)

	pt := pts.Features[0].Geom.(*geom.Point)
	assert.InDelta(t, 11.0, pt.X(), 1e-9)
	assert.InDelta(t, 21.0, pt.Y(), 1e-9)
}

func TestCentroidMultiPolygonWeightedByArea(t *testing.T) {
	// A big square and a far-away tiny one; the centroid must stay near the
	// big square, not at the midpoint of the two centers.
	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	require.NoError(t, mp.Push(square(0, 0, 10)))
	require.NoError(t, mp.Push(square(100, 0, 1)))

	c := NewCollection(4326)
	c.Append(Feature{Geom: mp, Attrs: map[string]any{"NAME": "San Juan"}})

	pts, err := c.Centroids()
	require.NoError(t, err)

	pt := pts.Features[0].Geom.(*geom.Point)
	assert.Less(t, pt.X(), 10.0)
}

func TestCentroidPointPassthrough(t *testing.T) {
	c := NewCollection(4326)
	c.Append(Feature{
		Geom:  geom.NewPointFlat(geom.XY, []float64{-120.5, 47.3}).SetSRID(4326),
		Attrs: map[string]any{"NAME": "Ephrata"},
	})

	pts, err := c.Centroids()
	require.NoError(t, err)

	pt := pts.Features[0].Geom.(*geom.Point)
	assert.InDelta(t, -120.5, pt.X(), 1e-9)
	assert.InDelta(t, 47.3, pt.Y(), 1e-9)
}

func TestCentroidNilGeometry(t *testing.T) {
	c := NewCollection(4326)
	c.Append(Feature{Attrs: map[string]any{"NAME": "nowhere"}})

	_, err := c.Centroids()
	assert.Error(t, err)
}

func TestCentroidUnsupportedGeometry(t *testing.T) {
	c := NewCollection(4326)
	c.Append(Feature{
		Geom: geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}),
	})

	_, err := c.Centroids()
	assert.Error(t, err)
}
