package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cartokit/chorogen/internal/arcgis"
	"github.com/cartokit/chorogen/internal/feature"
	"github.com/cartokit/chorogen/internal/fetcher"
	"github.com/cartokit/chorogen/internal/label"
	"github.com/cartokit/chorogen/internal/marine"
	"github.com/cartokit/chorogen/internal/pipeline"
	"github.com/cartokit/chorogen/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch boundaries and render the map",
	Long: `Runs the full pipeline: fetches the county layer and the neighboring-state
layer from their FeatureServer endpoints, loads the local marine shapefile if
configured, derives centroid labels with manual overrides, and writes the
rendered PNG.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			cfg.Map.OutputPath = out
		}

		log := zap.L().With(zap.String("command", "render"))

		in, err := acquire(ctx)
		if err != nil {
			return err
		}

		offsets, err := loadOffsets()
		if err != nil {
			return err
		}

		plan, err := pipeline.BuildPlan(cfg, in, offsets)
		if err != nil {
			return eris.Wrap(err, "render: build plan")
		}

		img, err := render.Render(plan)
		if err != nil {
			return eris.Wrap(err, "render: draw")
		}
		if err := render.WritePNG(cfg.Map.OutputPath, img); err != nil {
			return eris.Wrap(err, "render: write output")
		}

		log.Info("map written",
			zap.String("path", cfg.Map.OutputPath),
			zap.Int("width", cfg.Map.Width),
			zap.Int("height", cfg.Map.Height),
		)
		fmt.Printf("wrote %s\n", cfg.Map.OutputPath)
		return nil
	},
}

// acquire runs the sequential acquisition stage: counties, then states
// filtered to the configured neighbors, then the optional marine shapefile.
func acquire(ctx context.Context) (pipeline.Inputs, error) {
	var in pipeline.Inputs

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.Fetch.UserAgent,
		Timeout:    cfg.Fetch.Timeout(),
		MaxRetries: cfg.Fetch.MaxRetries,
	})
	client := arcgis.NewClient(f)
	q := arcgis.Query{
		Where:     cfg.ArcGIS.Where,
		OutFields: cfg.ArcGIS.OutFields,
		OutSR:     cfg.ArcGIS.OutSR,
		Format:    cfg.ArcGIS.Format,
	}

	counties, err := client.QueryFeatures(ctx, cfg.ArcGIS.CountiesURL, q)
	if err != nil {
		return in, eris.Wrap(err, "render: fetch counties")
	}

	states, err := client.QueryFeatures(ctx, cfg.ArcGIS.StatesURL, q)
	if err != nil {
		return in, eris.Wrap(err, "render: fetch states")
	}
	neighbors := states.FilterByAttr(cfg.ArcGIS.StateNameField, cfg.Map.Neighbors)
	if neighbors.Len() == 0 {
		return in, eris.Errorf("render: none of %v found in states layer field %s",
			cfg.Map.Neighbors, cfg.ArcGIS.StateNameField)
	}

	var marineFC *feature.Collection
	if cfg.Marine.Path != "" {
		marineFC, err = marine.Load(cfg.Marine.Path, cfg.Marine.NameField)
		if err != nil {
			return in, eris.Wrap(err, "render: load marine shapefile")
		}
	}

	in.Counties = counties
	in.Neighbors = neighbors
	in.Marine = marineFC
	return in, nil
}

func loadOffsets() (*label.Table, error) {
	if cfg.Labels.OffsetsPath == "" {
		return label.DefaultTable(), nil
	}
	table, err := label.LoadTable(cfg.Labels.OffsetsPath)
	if err != nil {
		return nil, eris.Wrap(err, "render: load label offsets")
	}
	return table, nil
}

func init() {
	renderCmd.Flags().String("out", "", "output PNG path (overrides map.output_path)")
	rootCmd.AddCommand(renderCmd)
}
