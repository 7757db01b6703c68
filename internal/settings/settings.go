// Package settings loads orchestrator configuration from YAML.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/ranenv/internal/core"
)

// Duration is a time.Duration written as a Go duration string, e.g. "90s".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: duration must be a string: %w", value.Line, err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// Timeouts mirrors the duration fields of core.Config. Nil fields are left
// unchanged by Apply.
type Timeouts struct {
	UEStartup          *Duration `yaml:"ue_startup"`
	BaseStationStartup *Duration `yaml:"base_station_startup"`
	CoreStartup        *Duration `yaml:"core_startup"`
	Attach             *Duration `yaml:"attach"`
	UEStop             *Duration `yaml:"ue_stop"`
	BaseStationStop    *Duration `yaml:"base_station_stop"`
	CoreStop           *Duration `yaml:"core_stop"`
	ControlCall        *Duration `yaml:"control_call"`
	CallGrace          *Duration `yaml:"call_grace"`
	AutoStop           *Duration `yaml:"auto_stop"`
	PingInterval       *Duration `yaml:"ping_interval"`
}

// Settings is the root of a settings document.
type Settings struct {
	Timeouts    Timeouts `yaml:"timeouts"`
	MaxParallel *int     `yaml:"max_parallel"`
}

// Parse decodes a settings document. Unknown keys are rejected.
func Parse(data []byte) (*Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &s, nil
}

// Load reads and parses the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Apply overwrites the fields of cfg that s sets. It does not validate the
// result.
func (s *Settings) Apply(cfg *core.Config) {
	t := s.Timeouts
	for _, f := range []struct {
		src *Duration
		dst *time.Duration
	}{
		{t.UEStartup, &cfg.UEStartupTimeout},
		{t.BaseStationStartup, &cfg.BaseStationStartupTimeout},
		{t.CoreStartup, &cfg.CoreStartupTimeout},
		{t.Attach, &cfg.AttachTimeout},
		{t.UEStop, &cfg.UEStopTimeout},
		{t.BaseStationStop, &cfg.BaseStationStopTimeout},
		{t.CoreStop, &cfg.CoreStopTimeout},
		{t.ControlCall, &cfg.ControlCallTimeout},
		{t.CallGrace, &cfg.CallGrace},
		{t.AutoStop, &cfg.AutoStopTimeout},
		{t.PingInterval, &cfg.PingInterval},
	} {
		if f.src != nil {
			*f.dst = time.Duration(*f.src)
		}
	}
	if s.MaxParallel != nil {
		cfg.MaxParallel = *s.MaxParallel
	}
}
