package ranenv

import "time"

// ConfigSnapshot holds a copy of orchestratorConfig fields for test
// assertions. Exported only via export_test.go so that the _test package
// can verify option closures without accessing internals.
type ConfigSnapshot struct {
	UEStartupTimeout          time.Duration
	BaseStationStartupTimeout time.Duration
	CoreStartupTimeout        time.Duration
	AttachTimeout             time.Duration
	UEStopTimeout             time.Duration
	BaseStationStopTimeout    time.Duration
	CoreStopTimeout           time.Duration
	ControlCallTimeout        time.Duration
	CallGrace                 time.Duration
	AutoStopTimeout           time.Duration
	PingInterval              time.Duration
	MaxParallel               int
	HasRegisterer             bool
}

// ApplyOptionsForTesting creates a default orchestratorConfig, applies the
// given options, and returns a snapshot of the result.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultOrchestratorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		UEStartupTimeout:          cfg.UEStartupTimeout,
		BaseStationStartupTimeout: cfg.BaseStationStartupTimeout,
		CoreStartupTimeout:        cfg.CoreStartupTimeout,
		AttachTimeout:             cfg.AttachTimeout,
		UEStopTimeout:             cfg.UEStopTimeout,
		BaseStationStopTimeout:    cfg.BaseStationStopTimeout,
		CoreStopTimeout:           cfg.CoreStopTimeout,
		ControlCallTimeout:        cfg.ControlCallTimeout,
		CallGrace:                 cfg.CallGrace,
		AutoStopTimeout:           cfg.AutoStopTimeout,
		PingInterval:              cfg.PingInterval,
		MaxParallel:               cfg.MaxParallel,
		HasRegisterer:             cfg.registerer != nil,
	}
}

// ValidateOptionsForTesting applies opts on top of the defaults and
// returns the validation result of the combined configuration.
func ValidateOptionsForTesting(opts ...Option) error {
	cfg := defaultOrchestratorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.Validate()
}
