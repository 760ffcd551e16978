package ui

import "github.com/simfoundry/simkit/alert"

// Config contains TUI-specific configuration.
type Config struct {
	GlamourStyle string `env:"GLAMOUR_STYLE"`
	EnableMouse  bool
	ShowHistory  bool `env:"SIMKIT_SHOW_HISTORY" envDefault:"true"`

	// Directory history exports are written to. Empty means the
	// system temp directory.
	ExportDir string `env:"SIMKIT_EXPORT_DIR"`

	// Alert queue and sink configuration.
	Alert alert.Config
}

// DefaultConfig returns the demo's default configuration.
func DefaultConfig() Config {
	return Config{
		GlamourStyle: "auto",
		ShowHistory:  true,
		Alert:        alert.DefaultConfig(),
	}
}
