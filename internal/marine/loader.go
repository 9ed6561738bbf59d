// Package marine loads the supplementary marine/water-body polygons from a
// local shapefile. The layer is contextual fill only; it never contributes to
// the map extent.
package marine

import (
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/cartokit/chorogen/internal/feature"
)

// Load reads polygon features and their attribute tables from the shapefile
// at path. Coordinates are taken as-is; the file is expected to ship in the
// same spatial reference as the fetched layers (EPSG:4326). nameField names
// the DBF column holding the water-body name; features without it still load.
func Load(path, nameField string) (*feature.Collection, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrapf(err, "marine: shapefile not found at %s", path)
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "marine: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	// Field names come NUL-padded out of the DBF header.
	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	fc := feature.NewCollection(4326)
	var skipped int
	var waterNames []string

	for reader.Next() {
		_, shape := reader.Shape()

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		g := polygonToMultiPolygon(poly)
		if g == nil {
			skipped++
			continue
		}

		attrs := make(map[string]any, len(names))
		for i, name := range names {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if val == "" {
				continue
			}
			attrs[name] = val
		}
		if name, ok := attrs[nameField].(string); ok {
			waterNames = append(waterNames, name)
		}

		fc.Append(feature.Feature{Geom: g, Attrs: attrs})
	}

	if skipped > 0 {
		zap.L().Debug("marine: skipped non-polygon records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	if fc.Len() == 0 {
		return nil, eris.Errorf("marine: no polygon features in %s", path)
	}

	zap.L().Info("marine shapefile loaded",
		zap.String("path", path),
		zap.Int("features", fc.Len()),
		zap.Strings("names", waterNames),
	)
	return fc, nil
}

// polygonToMultiPolygon converts a shapefile Polygon record to a go-geom
// MultiPolygon, splitting the flat point array at the record's part offsets.
// Per the shapefile spec, clockwise parts are exteriors and counterclockwise
// parts are holes in the preceding exterior.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	var current *geom.Polygon

	flush := func() {
		if current == nil || current.NumLinearRings() == 0 {
			return
		}
		if err := mp.Push(current); err != nil {
			zap.L().Debug("marine: skipping malformed part", zap.Error(err))
		}
	}

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}
		if end-start < 4 {
			continue
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		// A clockwise part (negative shoelace sum in a Y-up frame) opens a
		// new polygon; counterclockwise parts are holes in the one before.
		// A leading hole is promoted to an exterior rather than dropped.
		if signedArea(flat) <= 0 || current == nil {
			flush()
			current = geom.NewPolygon(geom.XY)
		}
		if err := current.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("marine: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}
	flush()

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
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
