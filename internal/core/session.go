package core

import (
	"context"
	"errors"
)

// Run starts the network, attaches the UEs, runs body with the attach
// records and always stops the network afterwards, also when start, attach
// or body failed or ctx was cancelled. The stop runs on a context detached
// from ctx and bounded by the network's stop budget.
//
// Errors are joined in the order start or body, then stop.
func (o *Orchestrator) Run(
	ctx context.Context,
	net Network,
	startOpts StartOptions,
	sink ArtifactSink,
	stopOpts StopOptions,
	body func(context.Context, AttachMap) error,
) error {
	if err := net.Validate(); err != nil {
		return err
	}

	var runErr error
	attached, err := o.StartAndAttach(ctx, net, startOpts)
	switch {
	case err != nil:
		runErr = err
	case body != nil:
		runErr = body(ctx, attached)
	}
	if runErr != nil {
		Logger().Error("session failed; stopping network", "error", runErr)
	}

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.stopBudget(net))
	defer cancel()
	_, stopErr := o.Stop(stopCtx, net, sink, stopOpts)

	return errors.Join(runErr, stopErr)
}
