// Package arcgis is a client for ArcGIS FeatureServer query endpoints. It
// understands both GeoJSON (f=geojson) and Esri JSON (f=json) payloads and
// follows transfer-limit pagination, producing feature.Collections in the
// requested spatial reference.
package arcgis

import (
	"net/url"
	"strconv"
	"strings"
)

// Format constants for the query f parameter.
const (
	FormatGeoJSON = "geojson"
	FormatJSON    = "json"
)

// Query describes one FeatureServer layer query. Zero values get the
// conventional defaults: match everything, all fields, EPSG:4326, GeoJSON.
type Query struct {
	Where     string
	OutFields string
	OutSR     int
	Format    string
	PageSize  int
}

func (q Query) withDefaults() Query {
	if q.Where == "" {
		q.Where = "1=1"
	}
	if q.OutFields == "" {
		q.OutFields = "*"
	}
	if q.OutSR == 0 {
		q.OutSR = 4326
	}
	if q.Format == "" {
		q.Format = FormatGeoJSON
	}
	return q
}

// Values renders the query as FeatureServer query parameters, paged from the
// given record offset.
func (q Query) Values(offset int) url.Values {
	q = q.withDefaults()
	v := url.Values{
		"where":          {q.Where},
		"outFields":      {q.OutFields},
		"outSR":          {strconv.Itoa(q.OutSR)},
		"f":              {q.Format},
		"returnGeometry": {"true"},
	}
	if offset > 0 {
		v.Set("resultOffset", strconv.Itoa(offset))
	}
	if q.PageSize > 0 {
		v.Set("resultRecordCount", strconv.Itoa(q.PageSize))
	}
	return v
}

// URL builds the full query URL for a layer root URL
// (".../FeatureServer/<id>", with or without a trailing slash).
func (q Query) URL(layerURL string, offset int) string {
	return strings.TrimRight(layerURL, "/") + "/query?" + q.Values(offset).Encode()
}
