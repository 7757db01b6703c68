package core

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		UEStartupTimeout:          3 * time.Minute,
		BaseStationStartupTimeout: 5 * time.Second,
		CoreStartupTimeout:        3 * time.Minute,
		AttachTimeout:             2 * time.Minute,
		ControlCallTimeout:        30 * time.Second,
		CallGrace:                 10 * time.Second,
		AutoStopTimeout:           5 * time.Minute,
		PingInterval:              time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := map[string]struct {
		modify       func(c *Config)
		wantContains string
	}{
		"zero UE startup timeout": {
			modify:       func(c *Config) { c.UEStartupTimeout = 0 },
			wantContains: "UE startup timeout",
		},
		"zero base-station startup timeout": {
			modify:       func(c *Config) { c.BaseStationStartupTimeout = 0 },
			wantContains: "base-station startup timeout",
		},
		"negative core startup timeout": {
			modify:       func(c *Config) { c.CoreStartupTimeout = -time.Second },
			wantContains: "core-network startup timeout",
		},
		"zero attach timeout": {
			modify:       func(c *Config) { c.AttachTimeout = 0 },
			wantContains: "attach timeout",
		},
		"negative UE stop timeout": {
			modify:       func(c *Config) { c.UEStopTimeout = -1 },
			wantContains: "UE stop timeout",
		},
		"negative call grace": {
			modify:       func(c *Config) { c.CallGrace = -1 },
			wantContains: "call grace",
		},
		"zero ping interval": {
			modify:       func(c *Config) { c.PingInterval = 0 },
			wantContains: "ping interval",
		},
		"negative max parallel": {
			modify:       func(c *Config) { c.MaxParallel = -2 },
			wantContains: "max parallel",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantContains) {
				t.Errorf("error %q does not contain %q", err, tc.wantContains)
			}
		})
	}

	t.Run("reports every violation", func(t *testing.T) {
		t.Parallel()
		err := Config{}.Validate()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if got := strings.Count(err.Error(), "must be greater than 0"); got != 7 {
			t.Errorf("got %d positivity violations, want 7:\n%v", got, err)
		}
	})
}

func TestConfig_Deadlines(t *testing.T) {
	t.Parallel()

	cfg := validConfig()

	if got, want := cfg.stopDeadline(0), cfg.AutoStopTimeout; got != want {
		t.Errorf("stopDeadline(0) = %s, want %s", got, want)
	}
	if got, want := cfg.stopDeadline(20*time.Second), 30*time.Second; got != want {
		t.Errorf("stopDeadline(20s) = %s, want %s", got, want)
	}
	if got, want := cfg.pingDeadline(5), 15*time.Second; got != want {
		t.Errorf("pingDeadline(5) = %s, want %s", got, want)
	}
}
