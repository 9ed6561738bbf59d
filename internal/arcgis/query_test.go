package arcgis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryDefaults(t *testing.T) {
	v := Query{}.Values(0)

	assert.Equal(t, "1=1", v.Get("where"))
	assert.Equal(t, "*", v.Get("outFields"))
	assert.Equal(t, "4326", v.Get("outSR"))
	assert.Equal(t, "geojson", v.Get("f"))
	assert.Equal(t, "true", v.Get("returnGeometry"))
	assert.Empty(t, v.Get("resultOffset"))
	assert.Empty(t, v.Get("resultRecordCount"))
}

func TestQueryValuesExplicit(t *testing.T) {
	q := Query{
		Where:     "STATE_NAME='Washington'",
		OutFields: "STATE_NAME,FIPS",
		OutSR:     3857,
		Format:    FormatJSON,
		PageSize:  500,
	}

	v := q.Values(1000)

	assert.Equal(t, "STATE_NAME='Washington'", v.Get("where"))
	assert.Equal(t, "STATE_NAME,FIPS", v.Get("outFields"))
	assert.Equal(t, "3857", v.Get("outSR"))
	assert.Equal(t, "json", v.Get("f"))
	assert.Equal(t, "1000", v.Get("resultOffset"))
	assert.Equal(t, "500", v.Get("resultRecordCount"))
}

func TestQueryURL(t *testing.T) {
	u := Query{}.URL("https://example.com/FeatureServer/0", 0)

	assert.Contains(t, u, "https://example.com/FeatureServer/0/query?")
	assert.Contains(t, u, "outSR=4326")
	assert.Contains(t, u, "f=geojson")
}

func TestQueryURLTrailingSlash(t *testing.T) {
	u := Query{}.URL("https://example.com/FeatureServer/0/", 0)

	assert.Contains(t, u, "https://example.com/FeatureServer/0/query?")
	assert.NotContains(t, u, "//query")
}
