// Package config reads environment overrides for the packer defaults.
package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Prefix is prepended to every variable name, e.g. ATLASPACK_PADDING.
const Prefix = "ATLASPACK"

// Config holds values taken from the environment. Pointer fields are nil
// when the variable is unset so they never mask the saved AppConfig.
type Config struct {
	ConfigPath      string          `envconfig:"CONFIG"`
	Mode            *model.PackMode `envconfig:"MODE"`
	MaxBinDimension *int            `envconfig:"MAX_BIN_DIMENSION"`
	Padding         *int            `envconfig:"PADDING"`
	AllowRotation   *bool           `envconfig:"ALLOW_ROTATION"`
	ReportTitle     string          `envconfig:"REPORT_TITLE"`
	PixelsPerUnit   float64         `envconfig:"DXF_PIXELS_PER_UNIT" default:"1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Apply overlays the variables that were set onto app.
func (c *Config) Apply(app *model.AppConfig) {
	if c.Mode != nil {
		app.DefaultMode = *c.Mode
	}
	if c.MaxBinDimension != nil {
		app.DefaultMaxBinDimension = *c.MaxBinDimension
	}
	if c.Padding != nil {
		app.DefaultPadding = *c.Padding
	}
	if c.AllowRotation != nil {
		app.DefaultAllowRotation = *c.AllowRotation
	}
	if c.ReportTitle != "" {
		app.ReportTitle = c.ReportTitle
	}
}
