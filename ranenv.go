package ranenv

import (
	"context"
	"fmt"

	"github.com/giantswarm/ranenv/internal/core"
	"github.com/giantswarm/ranenv/internal/metrics"
)

// Compile-time interface satisfaction check.
var _ Orchestrator = (*orchestratorWrapper)(nil)

// orchestratorWrapper wraps core.Orchestrator to implement the Orchestrator
// interface. The core value is a named field rather than embedded so that
// callers cannot reach internal methods through type assertions.
type orchestratorWrapper struct {
	orch *core.Orchestrator
}

func (w *orchestratorWrapper) StartNetwork(ctx context.Context, net Network, opts StartOptions) error {
	return w.orch.StartNetwork(ctx, net, opts)
}

func (w *orchestratorWrapper) AttachUEs(ctx context.Context, net Network) (AttachMap, error) {
	return w.orch.AttachUEs(ctx, net)
}

func (w *orchestratorWrapper) StartAndAttach(ctx context.Context, net Network, opts StartOptions) (AttachMap, error) {
	return w.orch.StartAndAttach(ctx, net, opts)
}

func (w *orchestratorWrapper) Ping(ctx context.Context, attached AttachMap, coreNet CoreNetwork, count int) error {
	return w.orch.Ping(ctx, attached, coreNet, count)
}

func (w *orchestratorWrapper) Throughput(ctx context.Context, attached AttachMap, coreNet CoreNetwork, spec TrafficSpec) error {
	return w.orch.Throughput(ctx, attached, coreNet, spec)
}

func (w *orchestratorWrapper) Stop(ctx context.Context, net Network, sink ArtifactSink, opts StopOptions) (Teardown, error) {
	return w.orch.Stop(ctx, net, sink, opts)
}

func (w *orchestratorWrapper) StopUEs(ctx context.Context, ues []UE, sink ArtifactSink, opts StopOptions) (Teardown, error) {
	return w.orch.StopUEs(ctx, ues, sink, opts)
}

func (w *orchestratorWrapper) Run(
	ctx context.Context,
	net Network,
	startOpts StartOptions,
	sink ArtifactSink,
	stopOpts StopOptions,
	body func(ctx context.Context, attached AttachMap) error,
) error {
	return w.orch.Run(ctx, net, startOpts, sink, stopOpts, body)
}

// NewOrchestrator returns an Orchestrator configured by opts on top of the
// Default* values. It performs no I/O.
//
// Panics if any option receives an invalid value, if the combined
// configuration is invalid, or if the metrics collectors cannot be
// registered (e.g. registered twice on the same registerer).
//
//nolint:ireturn // Callers substitute fakes behind the Orchestrator interface.
func NewOrchestrator(opts ...Option) Orchestrator {
	cfg := defaultOrchestratorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rec, err := metrics.New(cfg.registerer)
	if err != nil {
		panic(fmt.Sprintf("ranenv: %v", err))
	}
	return &orchestratorWrapper{orch: core.NewOrchestrator(cfg.Config, rec)}
}
