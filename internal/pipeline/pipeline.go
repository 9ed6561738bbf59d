// Package pipeline assembles fetched and derived collections into the draw
// plan for one map: context fills below, primary fill above them, marine fill
// for shoreline contrast, the primary outline on top, then labels.
package pipeline

import (
	"image/color"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/cartokit/chorogen/internal/config"
	"github.com/cartokit/chorogen/internal/feature"
	"github.com/cartokit/chorogen/internal/label"
	"github.com/cartokit/chorogen/internal/render"
)

// Inputs are the collections the acquisition stage produced. Marine is
// optional; the other two are required.
type Inputs struct {
	Counties  *feature.Collection
	Neighbors *feature.Collection
	Marine    *feature.Collection
}

// BuildPlan derives centroids and labels from the inputs and lays out the
// full layer stack. The extent comes from the counties layer alone, so
// context layers never stretch the visible frame.
func BuildPlan(cfg *config.Config, in Inputs, offsets *label.Table) (render.Plan, error) {
	if in.Counties.Len() == 0 {
		return render.Plan{}, eris.New("pipeline: counties collection is empty")
	}
	if in.Neighbors.Len() == 0 {
		return render.Plan{}, eris.New("pipeline: neighbors collection is empty")
	}

	labels, err := buildLabels(in.Counties, cfg.ArcGIS, offsets)
	if err != nil {
		return render.Plan{}, err
	}

	styles, err := parseStyles(cfg.Map)
	if err != nil {
		return render.Plan{}, err
	}
	labelColor, err := render.ParseHexColor(cfg.Labels.Color)
	if err != nil {
		return render.Plan{}, eris.Wrap(err, "pipeline: label color")
	}

	layers := []render.Layer{
		{Name: "neighbors", FC: in.Neighbors, Style: styles.neighbor},
		{Name: "counties", FC: in.Counties, Style: styles.county},
	}
	if in.Marine.Len() > 0 {
		layers = append(layers, render.Layer{Name: "marine", FC: in.Marine, Style: styles.marine})
	}
	// The outline redraws county boundaries over every fill so shared
	// borders stay visible.
	layers = append(layers, render.Layer{Name: "county-outline", FC: in.Counties, Style: styles.outline})

	plan := render.Plan{
		Layers:     layers,
		Labels:     labels,
		Extent:     in.Counties.Extent().Expand(cfg.Map.MarginDeg),
		Width:      cfg.Map.Width,
		Height:     cfg.Map.Height,
		Background: styles.background,
		FontSize:   cfg.Labels.FontSize,
		LabelColor: labelColor,
	}

	zap.L().Info("plan assembled",
		zap.Int("layers", len(plan.Layers)),
		zap.Int("labels", len(plan.Labels)),
		zap.Float64("extent_width_deg", plan.Extent.Width()),
		zap.Float64("extent_height_deg", plan.Extent.Height()),
	)
	return plan, nil
}

// buildLabels places one label per county at its area-weighted centroid,
// nudged by the override table, with the display name wrapped onto two lines.
// The override table is keyed by the unwrapped display name. Counties are
// keyed by their jurisdiction code when the layer carries one, so a layer
// that returns several records per county still yields a single label.
func buildLabels(counties *feature.Collection, arc config.ArcGISConfig, offsets *label.Table) ([]render.Label, error) {
	centroids, err := counties.Centroids()
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: derive centroids")
	}

	labels := make([]render.Label, 0, centroids.Len())
	seen := make(map[string]bool, centroids.Len())
	for _, f := range centroids.Features {
		pt, ok := f.Geom.(*geom.Point)
		if !ok {
			continue
		}
		name := label.Display(f.StringAttr(arc.CountyNameField))
		if name == "" {
			continue
		}
		if code := f.StringAttr(arc.CountyCodeField); code != "" {
			if seen[code] {
				zap.L().Debug("pipeline: duplicate jurisdiction code, skipping label",
					zap.String("code", code),
					zap.String("name", name),
				)
				continue
			}
			seen[code] = true
		}
		off := offsets.Lookup(name)
		labels = append(labels, render.Label{
			Text: label.Wrap(name),
			X:    pt.X() + off.DX,
			Y:    pt.Y() + off.DY,
		})
	}
	return labels, nil
}

type planStyles struct {
	county     render.Style
	neighbor   render.Style
	marine     render.Style
	outline    render.Style
	background color.NRGBA
}

func parseStyles(m config.MapConfig) (planStyles, error) {
	var out planStyles

	countyFill, err := render.ParseHexColor(m.CountyFill)
	if err != nil {
		return out, eris.Wrap(err, "pipeline: county fill")
	}
	neighborFill, err := render.ParseHexColor(m.NeighborFill)
	if err != nil {
		return out, eris.Wrap(err, "pipeline: neighbor fill")
	}
	marineFill, err := render.ParseHexColor(m.MarineFill)
	if err != nil {
		return out, eris.Wrap(err, "pipeline: marine fill")
	}
	outline, err := render.ParseHexColor(m.OutlineColor)
	if err != nil {
		return out, eris.Wrap(err, "pipeline: outline color")
	}
	bg, err := render.ParseHexColor(m.Background)
	if err != nil {
		return out, eris.Wrap(err, "pipeline: background")
	}

	out.county = render.Style{Fill: countyFill}
	out.neighbor = render.Style{Fill: neighborFill}
	out.marine = render.Style{Fill: marineFill}
	out.outline = render.Style{Stroke: outline, StrokeWidth: m.OutlineWidth}
	out.background = bg
	return out, nil
}
