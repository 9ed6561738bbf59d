package arcgis

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/cartokit/chorogen/internal/feature"
	"github.com/cartokit/chorogen/internal/fetcher"
)

// Client queries FeatureServer layers through a fetcher.
type Client struct {
	f fetcher.Fetcher
}

// NewClient creates a client backed by the given fetcher.
func NewClient(f fetcher.Fetcher) *Client {
	return &Client{f: f}
}

// QueryFeatures runs the query against the layer and returns all features,
// following resultOffset pagination whenever the server reports
// exceededTransferLimit. Any fetch or parse failure aborts with the layer URL
// in the error.
func (c *Client) QueryFeatures(ctx context.Context, layerURL string, q Query) (*feature.Collection, error) {
	q = q.withDefaults()
	log := zap.L().With(zap.String("component", "arcgis"), zap.String("layer", layerURL))

	fc := feature.NewCollection(q.OutSR)
	offset := 0
	for {
		feats, exceeded, err := c.queryPage(ctx, layerURL, q, offset)
		if err != nil {
			return nil, eris.Wrapf(err, "arcgis: query %s", layerURL)
		}
		for _, f := range feats {
			fc.Append(f)
		}

		log.Debug("fetched page",
			zap.Int("offset", offset),
			zap.Int("features", len(feats)),
			zap.Bool("exceeded_transfer_limit", exceeded),
		)

		if !exceeded || len(feats) == 0 {
			break
		}
		offset += len(feats)
	}

	log.Info("layer fetched", zap.Int("features", fc.Len()), zap.Int("out_sr", q.OutSR))
	return fc, nil
}

func (c *Client) queryPage(ctx context.Context, layerURL string, q Query, offset int) ([]feature.Feature, bool, error) {
	body, err := c.f.Download(ctx, q.URL(layerURL, offset))
	if err != nil {
		return nil, false, err
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, false, eris.Wrap(err, "read response")
	}

	if q.Format == FormatJSON {
		return parseEsriJSON(data, q.OutSR)
	}
	return parseGeoJSON(data, q.OutSR)
}

// geoJSONEnvelope picks up the non-standard members ArcGIS adds to its
// GeoJSON output: the pagination marker and the error object it returns with
// HTTP 200.
type geoJSONEnvelope struct {
	Error                 *esriError `json:"error"`
	ExceededTransferLimit bool       `json:"exceededTransferLimit"`
}

// parseGeoJSON decodes a GeoJSON FeatureCollection payload into features.
func parseGeoJSON(data []byte, srid int) ([]feature.Feature, bool, error) {
	var env geoJSONEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false, eris.Wrap(err, "arcgis: parse response envelope")
	}
	if env.Error != nil {
		return nil, false, eris.Errorf("arcgis: server error %d: %s", env.Error.Code, env.Error.Message)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, false, eris.Wrap(err, "arcgis: parse geojson")
	}

	out := make([]feature.Feature, 0, len(fc.Features))
	for _, gf := range fc.Features {
		attrs := gf.Properties
		if attrs == nil {
			attrs = map[string]any{}
		}
		out = append(out, feature.Feature{Geom: gf.Geometry, Attrs: attrs})
	}
	return out, env.ExceededTransferLimit, nil
}
