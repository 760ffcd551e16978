package alert_test

import (
	"strings"
	"testing"
	"time"

	"github.com/simfoundry/simkit/alert"
)

// TestDefaultConfigValid verifies defaults pass validation.
func TestDefaultConfigValid(t *testing.T) {
	cfg := alert.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Interval != alert.DefaultInterval {
		t.Errorf("expected default interval %v, got %v", alert.DefaultInterval, cfg.Interval)
	}
}

// TestConfigValidation exercises the range checks.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*alert.Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *alert.Config) {},
		},
		{
			name:    "interval too small",
			mutate:  func(c *alert.Config) { c.Interval = 10 * time.Millisecond },
			wantErr: "interval",
		},
		{
			name:    "interval too large",
			mutate:  func(c *alert.Config) { c.Interval = time.Minute },
			wantErr: "interval",
		},
		{
			name: "speech without command",
			mutate: func(c *alert.Config) {
				c.Speech.Enabled = true
				c.Speech.Command = ""
			},
			wantErr: "command",
		},
		{
			name: "speech timeout too small",
			mutate: func(c *alert.Config) {
				c.Speech.Enabled = true
				c.Speech.Timeout = 100 * time.Millisecond
			},
			wantErr: "timeout",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *alert.Config) { c.RateLimit = -1 },
			wantErr: "invalid alert config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := alert.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestToQueueOptions verifies config translates into queue state.
func TestToQueueOptions(t *testing.T) {
	cfg := alert.DefaultConfig()
	cfg.Interval = time.Second
	cfg.Muted = true
	cfg.Enabled = false

	q := alert.NewQueue(cfg.ToQueueOptions()...)
	if q.Interval() != time.Second {
		t.Errorf("expected interval 1s, got %v", q.Interval())
	}
	if !q.Muted() {
		t.Error("expected muted queue")
	}
	if q.Enabled() {
		t.Error("expected disabled queue")
	}
}
