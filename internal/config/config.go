// Package config loads application configuration from config.yaml and the
// environment, and owns global logger setup.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	ArcGIS ArcGISConfig `yaml:"arcgis" mapstructure:"arcgis"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Marine MarineConfig `yaml:"marine" mapstructure:"marine"`
	Map    MapConfig    `yaml:"map" mapstructure:"map"`
	Labels LabelConfig  `yaml:"labels" mapstructure:"labels"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ArcGISConfig names the FeatureServer layers and the query shape used
// against them. URLs point at the layer root; the client appends /query.
type ArcGISConfig struct {
	CountiesURL     string `yaml:"counties_url" mapstructure:"counties_url"`
	StatesURL       string `yaml:"states_url" mapstructure:"states_url"`
	Where           string `yaml:"where" mapstructure:"where"`
	OutFields       string `yaml:"out_fields" mapstructure:"out_fields"`
	OutSR           int    `yaml:"out_sr" mapstructure:"out_sr"`
	Format          string `yaml:"format" mapstructure:"format"`
	CountyNameField string `yaml:"county_name_field" mapstructure:"county_name_field"`
	CountyCodeField string `yaml:"county_code_field" mapstructure:"county_code_field"`
	StateNameField  string `yaml:"state_name_field" mapstructure:"state_name_field"`
}

// FetchConfig configures the HTTP transport.
type FetchConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
}

// Timeout returns the configured HTTP timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSecs) * time.Second
}

// MarineConfig locates the supplementary marine/water shapefile.
type MarineConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	NameField string `yaml:"name_field" mapstructure:"name_field"`
}

// MapConfig configures the rendered artifact: size, crop margin, which
// neighboring states provide context fill, and layer colors as #RRGGBB[AA]
// hex strings.
type MapConfig struct {
	OutputPath   string   `yaml:"output_path" mapstructure:"output_path"`
	Width        int      `yaml:"width" mapstructure:"width"`
	Height       int      `yaml:"height" mapstructure:"height"`
	MarginDeg    float64  `yaml:"margin_deg" mapstructure:"margin_deg"`
	Neighbors    []string `yaml:"neighbors" mapstructure:"neighbors"`
	CountyFill   string   `yaml:"county_fill" mapstructure:"county_fill"`
	NeighborFill string   `yaml:"neighbor_fill" mapstructure:"neighbor_fill"`
	MarineFill   string   `yaml:"marine_fill" mapstructure:"marine_fill"`
	OutlineColor string   `yaml:"outline_color" mapstructure:"outline_color"`
	OutlineWidth float64  `yaml:"outline_width" mapstructure:"outline_width"`
	Background   string   `yaml:"background" mapstructure:"background"`
}

// LabelConfig configures label text rendering and placement overrides.
type LabelConfig struct {
	FontSize    float64 `yaml:"font_size" mapstructure:"font_size"`
	Color       string  `yaml:"color" mapstructure:"color"`
	OffsetsPath string  `yaml:"offsets_path" mapstructure:"offsets_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CHOROGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("arcgis.counties_url", "https://gis.dnr.wa.gov/site3/rest/services/Public_Boundaries/WADNR_PUBLIC_Cadastre_OpenData/FeatureServer/11")
	v.SetDefault("arcgis.states_url", "https://services.arcgis.com/P3ePLMYs2RVChkJx/arcgis/rest/services/USA_States_Generalized/FeatureServer/0")
	v.SetDefault("arcgis.where", "1=1")
	v.SetDefault("arcgis.out_fields", "*")
	v.SetDefault("arcgis.out_sr", 4326)
	v.SetDefault("arcgis.format", "geojson")
	v.SetDefault("arcgis.county_name_field", "JURISDICT_LABEL_NM")
	v.SetDefault("arcgis.county_code_field", "JURISDICT_FIPS_DESG_CD")
	v.SetDefault("arcgis.state_name_field", "STATE_NAME")
	v.SetDefault("fetch.user_agent", "chorogen/1.0")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("marine.path", "")
	v.SetDefault("marine.name_field", "NAME")
	v.SetDefault("map.output_path", "map.png")
	v.SetDefault("map.width", 1600)
	v.SetDefault("map.height", 1200)
	v.SetDefault("map.margin_deg", 0.1)
	v.SetDefault("map.neighbors", []string{"Idaho", "Oregon"})
	v.SetDefault("map.county_fill", "#f5f2e9")
	v.SetDefault("map.neighbor_fill", "#e0ddd5")
	v.SetDefault("map.marine_fill", "#c9dced")
	v.SetDefault("map.outline_color", "#5b5b5b")
	v.SetDefault("map.outline_width", 1.5)
	v.SetDefault("map.background", "#ffffff")
	v.SetDefault("labels.font_size", 18)
	v.SetDefault("labels.color", "#222222")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
