package ranenv

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/giantswarm/ranenv/internal/settings"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("ranenv: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonNegative panics if v < 0 with a descriptive message.
func requireNonNegative[T int | time.Duration](name string, v T) {
	if v < 0 {
		panic(fmt.Sprintf("ranenv: %s must not be negative, got %v", name, v))
	}
}

// Option configures an Orchestrator during construction via
// NewOrchestrator.
//
// With* functions panic on invalid input. Option values are typically
// constants, so an invalid value is a programmer error; this mirrors
// [regexp.MustCompile].
type Option func(*orchestratorConfig)

// WithUEStartupTimeout sets the timeout passed to every UE start.
//
// Default: 3 minutes.
//
// Panics if d <= 0.
func WithUEStartupTimeout(d time.Duration) Option {
	requirePositive("UE startup timeout", d)
	return func(c *orchestratorConfig) {
		c.UEStartupTimeout = d
	}
}

// WithBaseStationStartupTimeout sets the timeout passed to the
// base-station start.
//
// Default: 5 seconds.
//
// Panics if d <= 0.
func WithBaseStationStartupTimeout(d time.Duration) Option {
	requirePositive("base-station startup timeout", d)
	return func(c *orchestratorConfig) {
		c.BaseStationStartupTimeout = d
	}
}

// WithCoreStartupTimeout sets the timeout passed to the core-network start.
//
// Default: 3 minutes.
//
// Panics if d <= 0.
func WithCoreStartupTimeout(d time.Duration) Option {
	requirePositive("core-network startup timeout", d)
	return func(c *orchestratorConfig) {
		c.CoreStartupTimeout = d
	}
}

// WithAttachTimeout sets how long each UE may take to attach.
//
// Default: 120 seconds.
//
// Panics if d <= 0.
func WithAttachTimeout(d time.Duration) Option {
	requirePositive("attach timeout", d)
	return func(c *orchestratorConfig) {
		c.AttachTimeout = d
	}
}

// WithStopTimeouts sets the stop timeouts passed to UEs, the base-station
// and the core-network. Zero lets the entity decide.
//
// Default: 0 for all three.
//
// Panics if any value is negative.
func WithStopTimeouts(ue, baseStation, coreNetwork time.Duration) Option {
	requireNonNegative("UE stop timeout", ue)
	requireNonNegative("base-station stop timeout", baseStation)
	requireNonNegative("core-network stop timeout", coreNetwork)
	return func(c *orchestratorConfig) {
		c.UEStopTimeout = ue
		c.BaseStationStopTimeout = baseStation
		c.CoreStopTimeout = coreNetwork
	}
}

// WithControlCallTimeout bounds short control calls such as definitions,
// subscriber registration, metrics and traffic listener management.
//
// Default: 30 seconds.
//
// Panics if d <= 0.
func WithControlCallTimeout(d time.Duration) Option {
	requirePositive("control call timeout", d)
	return func(c *orchestratorConfig) {
		c.ControlCallTimeout = d
	}
}

// WithCallGrace sets the margin added to every remote timeout to form the
// local deadline of the call.
//
// Default: 10 seconds.
//
// Panics if d < 0.
func WithCallGrace(d time.Duration) Option {
	requireNonNegative("call grace", d)
	return func(c *orchestratorConfig) {
		c.CallGrace = d
	}
}

// WithAutoStopTimeout sets the local deadline of stop calls whose remote
// timeout is zero.
//
// Default: 5 minutes.
//
// Panics if d <= 0.
func WithAutoStopTimeout(d time.Duration) Option {
	requirePositive("auto stop timeout", d)
	return func(c *orchestratorConfig) {
		c.AutoStopTimeout = d
	}
}

// WithPingInterval sets the expected spacing of probe packets. A ping of n
// packets gets a local deadline of n*d plus the call grace.
//
// Default: 1 second.
//
// Panics if d <= 0.
func WithPingInterval(d time.Duration) Option {
	requirePositive("ping interval", d)
	return func(c *orchestratorConfig) {
		c.PingInterval = d
	}
}

// WithMaxParallel caps concurrent per-UE tasks. Zero means unlimited.
//
// Default: 0.
//
// Panics if n < 0.
func WithMaxParallel(n int) Option {
	requireNonNegative("max parallel", n)
	return func(c *orchestratorConfig) {
		c.MaxParallel = n
	}
}

// WithMetricsRegisterer registers the orchestration collectors on reg.
// Without it the collectors live on a private registry.
//
// Panics if reg is nil.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	if reg == nil {
		panic("ranenv: metrics registerer must not be nil")
	}
	return func(c *orchestratorConfig) {
		c.registerer = reg
	}
}

// OptionsFromYAML reads a settings file and returns an Option applying the
// values it sets. Keys it leaves out keep their current values. An example
// file:
//
//	timeouts:
//	  attach: 90s
//	  call_grace: 5s
//	  ue_stop: 30s
//	max_parallel: 8
//
// The resulting configuration is validated by NewOrchestrator.
func OptionsFromYAML(path string) (Option, error) {
	s, err := settings.Load(path)
	if err != nil {
		return nil, err
	}
	return func(c *orchestratorConfig) {
		s.Apply(&c.Config)
	}, nil
}
