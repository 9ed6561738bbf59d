package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cartokit/chorogen/internal/arcgis"
	"github.com/cartokit/chorogen/internal/fetcher"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch {counties|states}",
	Short: "Download one layer's raw payload to a file",
	Long: `Fetches a single configured FeatureServer layer and writes the raw response
to disk, for inspecting payloads or reusing them offline. Pagination is not
followed; this is the first page exactly as the server returns it.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"counties", "states"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var layerURL string
		switch args[0] {
		case "counties":
			layerURL = cfg.ArcGIS.CountiesURL
		case "states":
			layerURL = cfg.ArcGIS.StatesURL
		default:
			return eris.Errorf("fetch: unknown layer %q", args[0])
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = args[0] + "." + cfg.ArcGIS.Format
		}

		q := arcgis.Query{
			Where:     cfg.ArcGIS.Where,
			OutFields: cfg.ArcGIS.OutFields,
			OutSR:     cfg.ArcGIS.OutSR,
			Format:    cfg.ArcGIS.Format,
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  cfg.Fetch.UserAgent,
			Timeout:    cfg.Fetch.Timeout(),
			MaxRetries: cfg.Fetch.MaxRetries,
		})

		n, err := f.DownloadToFile(ctx, q.URL(layerURL, 0), out)
		if err != nil {
			return eris.Wrapf(err, "fetch: download %s", layerURL)
		}

		zap.L().Info("layer saved",
			zap.String("layer", args[0]),
			zap.String("path", out),
			zap.Int64("bytes", n),
		)
		fmt.Printf("wrote %s (%d bytes)\n", out, n)
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("out", "", "output path (default <layer>.<format>)")
	rootCmd.AddCommand(fetchCmd)
}
