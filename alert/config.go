package alert

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config contains alert queue configuration options.
type Config struct {
	// Queue settings
	Interval time.Duration `yaml:"interval" env:"SIMKIT_ALERT_INTERVAL" envDefault:"500ms" validate:"required"`
	Muted    bool          `yaml:"muted"    env:"SIMKIT_ALERT_MUTED"    envDefault:"false"`
	Enabled  bool          `yaml:"enabled"  env:"SIMKIT_ALERT_ENABLED"  envDefault:"true"`

	// Sink settings
	Speech SpeechConfig `yaml:"speech"`
	Chime  bool         `yaml:"chime" env:"SIMKIT_ALERT_CHIME" envDefault:"false"`

	// Announcements per second forwarded to external sinks; 0 disables
	// the limiter.
	RateLimit float64 `yaml:"rate_limit" env:"SIMKIT_ALERT_RATE_LIMIT" envDefault:"0" validate:"gte=0"`
}

// SpeechConfig contains speech synthesis sink settings.
type SpeechConfig struct {
	Enabled bool          `yaml:"enabled" env:"SIMKIT_SPEECH_ENABLED" envDefault:"false"`
	Command string        `yaml:"command" env:"SIMKIT_SPEECH_COMMAND" envDefault:"espeak-ng"`
	Args    []string      `yaml:"args"    env:"SIMKIT_SPEECH_ARGS"`
	Timeout time.Duration `yaml:"timeout" env:"SIMKIT_SPEECH_TIMEOUT" envDefault:"10s"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: DefaultInterval,
		Muted:    false,
		Enabled:  true,
		Speech:   DefaultSpeechConfig(),
		Chime:    false,
	}
}

// DefaultSpeechConfig returns default speech sink configuration.
func DefaultSpeechConfig() SpeechConfig {
	return SpeechConfig{
		Enabled: false,
		Command: "espeak-ng",
		Timeout: 10 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid alert config: %w", err)
	}

	if c.Interval < 50*time.Millisecond || c.Interval > 10*time.Second {
		return fmt.Errorf("interval must be between 50ms and 10s, got %v", c.Interval)
	}

	if c.Speech.Enabled {
		if c.Speech.Command == "" {
			return fmt.Errorf("speech command cannot be empty")
		}
		if c.Speech.Timeout < time.Second {
			return fmt.Errorf("speech timeout must be at least 1 second, got %v", c.Speech.Timeout)
		}
	}

	return nil
}

// ToQueueOptions converts the configuration into queue construction
// options.
func (c *Config) ToQueueOptions() []QueueOption {
	opts := []QueueOption{WithInterval(c.Interval)}
	if c.Muted {
		opts = append(opts, WithMuted())
	}
	if !c.Enabled {
		opts = append(opts, WithDisabled())
	}
	return opts
}
