package ranenv

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/giantswarm/ranenv/internal/core"
)

// orchestratorConfig holds configuration for an Orchestrator. It embeds
// core.Config to keep internal types out of the public API signature.
type orchestratorConfig struct {
	core.Config

	// registerer receives the orchestration collectors. Nil keeps them on
	// a private registry.
	registerer prometheus.Registerer
}

// defaultOrchestratorConfig returns an orchestratorConfig populated with
// all default values.
func defaultOrchestratorConfig() orchestratorConfig {
	return orchestratorConfig{Config: core.Config{
		UEStartupTimeout:          DefaultUEStartupTimeout,
		BaseStationStartupTimeout: DefaultBaseStationStartupTimeout,
		CoreStartupTimeout:        DefaultCoreStartupTimeout,
		AttachTimeout:             DefaultAttachTimeout,
		UEStopTimeout:             DefaultStopTimeout,
		BaseStationStopTimeout:    DefaultStopTimeout,
		CoreStopTimeout:           DefaultStopTimeout,
		ControlCallTimeout:        DefaultControlCallTimeout,
		CallGrace:                 DefaultCallGrace,
		AutoStopTimeout:           DefaultAutoStopTimeout,
		PingInterval:              DefaultPingInterval,
		MaxParallel:               DefaultMaxParallel,
	}}
}
