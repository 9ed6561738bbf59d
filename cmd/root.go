package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cartokit/chorogen/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "chorogen",
	Short: "Static county map generator",
	Long:  "Fetches county and state boundaries from ArcGIS FeatureServer endpoints, derives centroid labels, and renders a static labeled map with marine context fill.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
