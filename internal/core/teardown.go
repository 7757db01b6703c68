package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/giantswarm/ranenv/internal/entity"
	"github.com/giantswarm/ranenv/internal/verdict"
)

// StopOptions select the teardown policy.
type StopOptions struct {
	// LogSearch enables the error and warning counts reported by each
	// entity's log search.
	LogSearch bool
	// WarningsAreErrors escalates logged warnings to failures. Only
	// effective with LogSearch.
	WarningsAreErrors bool
	// FailOnResidualErrors enables the post-stop KO and retransmission
	// check.
	FailOnResidualErrors bool
	// MetricsOnStopFailure collects residual metrics even when the stop
	// check failed. The stop failure is still what is returned.
	MetricsOnStopFailure bool
}

// DefaultStopOptions returns log search on with warnings escalated and the
// residual metrics check off.
func DefaultStopOptions() StopOptions {
	return StopOptions{LogSearch: true, WarningsAreErrors: true}
}

// EntityOutcome is the teardown record of one entity.
type EntityOutcome struct {
	Name     string
	Kind     entity.Kind
	EntityID string
	Outcome  entity.StopOutcome
	// StopErr is the transport error of the stop call, if any.
	StopErr error
	// Message is the stop-check failure for this entity, or "".
	Message string
	// Metrics is nil unless residual metrics were fetched successfully.
	Metrics    *entity.Metrics
	MetricsErr error
	// ArtifactsRequested reports whether this entity raised an artifact
	// capture request.
	ArtifactsRequested bool
}

// Teardown is the record of a stop pass, in stop order.
type Teardown struct {
	Entities []EntityOutcome
}

// TransportErrors aggregates every stop and metrics transport error, or
// returns nil.
func (t Teardown) TransportErrors() error {
	var errs []error
	for _, e := range t.Entities {
		if e.StopErr != nil {
			errs = append(errs, fmt.Errorf("%s stop: %w", e.Name, e.StopErr))
		}
		if e.MetricsErr != nil {
			errs = append(errs, fmt.Errorf("%s metrics: %w", e.Name, e.MetricsErr))
		}
	}
	return utilerrors.NewAggregate(errs)
}

// Failed returns the names of the entities whose stop check failed.
func (t Teardown) Failed() []string {
	var names []string
	for _, e := range t.Entities {
		if e.Message != "" {
			names = append(names, e.Name)
		}
	}
	return names
}

const (
	stageStop    = "Stop stage"
	stageUEStop  = "UE Stop"
	stageMetrics = "Metrics validation"
)

type stopTarget struct {
	name    string
	ent     entity.Entity
	timeout time.Duration
}

// Stop stops every entity of net in the order UEs, base-station,
// core-network, one at a time, and checks each outcome. Nil handles are
// skipped. A failed stop call never prevents stopping the rest.
//
// Each failing entity raises one artifact capture request on sink, which
// may be nil. The returned error is a report matching ErrStopFailed or,
// when the stop check passed and opts.FailOnResidualErrors is set,
// ErrResidualMetrics.
func (o *Orchestrator) Stop(ctx context.Context, net Network, sink ArtifactSink, opts StopOptions) (Teardown, error) {
	targets := make([]stopTarget, 0, len(net.UEs)+2)
	targets = append(targets, o.ueTargets(net.UEs)...)
	if net.BaseStation != nil {
		targets = append(targets, stopTarget{baseStationName, net.BaseStation, o.cfg.BaseStationStopTimeout})
	}
	if net.Core != nil {
		targets = append(targets, stopTarget{coreName, net.Core, o.cfg.CoreStopTimeout})
	}
	return o.stopAll(ctx, targets, sink, opts, stageStop)
}

// StopUEs stops only ues, in order, with the same checks as Stop under the
// stage "UE Stop".
func (o *Orchestrator) StopUEs(ctx context.Context, ues []entity.UE, sink ArtifactSink, opts StopOptions) (Teardown, error) {
	return o.stopAll(ctx, o.ueTargets(ues), sink, opts, stageUEStop)
}

func (o *Orchestrator) ueTargets(ues []entity.UE) []stopTarget {
	targets := make([]stopTarget, 0, len(ues))
	for i, ue := range ues {
		if ue == nil {
			continue
		}
		targets = append(targets, stopTarget{ueName(i), ue, o.cfg.UEStopTimeout})
	}
	return targets
}

func (o *Orchestrator) stopAll(
	ctx context.Context,
	targets []stopTarget,
	sink ArtifactSink,
	opts StopOptions,
	stage string,
) (Teardown, error) {
	if sink == nil {
		sink = discardSink{}
	}

	td := Teardown{Entities: make([]EntityOutcome, 0, len(targets))}
	msgs := make([]string, 0, len(targets))
	for _, t := range targets {
		eo := o.stopOne(ctx, t, opts)
		if eo.Message != "" {
			sink.RequestArtifacts(t.name, eo.Message)
			o.rec.ArtifactRequest()
			o.rec.StopFailure(eo.Kind.String())
			eo.ArtifactsRequested = true
		}
		td.Entities = append(td.Entities, eo)
		msgs = append(msgs, eo.Message)
	}

	stopErr := verdict.Collect(ErrStopFailed, stage, msgs...).AsError()
	if !opts.FailOnResidualErrors || (stopErr != nil && !opts.MetricsOnStopFailure) {
		return td, stopErr
	}

	residual := o.checkResidual(ctx, targets, &td)
	if stopErr != nil {
		return td, stopErr
	}
	return td, verdict.Collect(ErrResidualMetrics, stageMetrics, residual...).AsError()
}

// stopOne stops one entity and builds its stop-check message.
func (o *Orchestrator) stopOne(ctx context.Context, t stopTarget, opts StopOptions) EntityOutcome {
	eo := EntityOutcome{Name: t.name, Kind: t.ent.Kind(), EntityID: t.ent.ID()}
	log := Logger().With("entity", t.name, "id", eo.EntityID)

	out, err := callValue(ctx, o.cfg.stopDeadline(t.timeout), func(c context.Context) (entity.StopOutcome, error) {
		return t.ent.Stop(c, t.timeout)
	})
	if err != nil {
		log.Error("stop call failed", "error", err)
		eo.StopErr = err
		eo.Message = fmt.Sprintf("%s stop call failed: %v.", t.name, err)
		return eo
	}
	eo.Outcome = out
	log.Info("entity stopped", "exit_code", out.ExitCode,
		"errors", out.ErrorCount, "warnings", out.WarningCount)

	var b strings.Builder
	if out.Crashed() {
		fmt.Fprintf(&b, "%s crashed with exit code %d. ", t.name, out.ExitCode)
	}
	if opts.LogSearch {
		switch {
		case out.ErrorCount > 0:
			fmt.Fprintf(&b, "%s has %d errors and %d warnings. First error is: %s",
				t.name, out.ErrorCount, out.WarningCount, out.FirstError)
		case out.WarningCount > 0 && opts.WarningsAreErrors:
			fmt.Fprintf(&b, "%s has %d errors and %d warnings. First warning is: %s",
				t.name, out.ErrorCount, out.WarningCount, out.FirstWarning)
		case out.WarningCount > 0:
			log.Warn("entity logged warnings", "warnings", out.WarningCount, "first", out.FirstWarning)
		}
	}
	eo.Message = strings.TrimSpace(b.String())
	return eo
}

// checkResidual fetches metrics for every target and returns one message
// per entity with residual KOs or retransmissions. Fetch errors are logged
// and recorded but do not fail the check.
func (o *Orchestrator) checkResidual(ctx context.Context, targets []stopTarget, td *Teardown) []string {
	var msgs []string
	for i, t := range targets {
		log := Logger().With("entity", t.name, "id", td.Entities[i].EntityID)
		m, err := callValue(ctx, o.cfg.ControlCallTimeout, t.ent.GetMetrics)
		if err != nil {
			log.Warn("get metrics failed", "error", err)
			td.Entities[i].MetricsErr = err
			continue
		}
		td.Entities[i].Metrics = &m
		if m.KOs == 0 && m.Retransmissions == 0 {
			continue
		}
		log.Error("residual errors after stop", "kos", m.KOs, "retransmissions", m.Retransmissions)
		o.rec.ResidualFailure(td.Entities[i].Kind.String())
		msgs = append(msgs, fmt.Sprintf("%s has %d KOs and %d retransmissions", t.name, m.KOs, m.Retransmissions))
	}
	return msgs
}

// stopBudget bounds a full Stop of net, including the residual metrics
// pass.
func (o *Orchestrator) stopBudget(net Network) time.Duration {
	n := len(net.UEs)
	total := time.Duration(n) * o.cfg.stopDeadline(o.cfg.UEStopTimeout)
	total += o.cfg.stopDeadline(o.cfg.BaseStationStopTimeout)
	total += o.cfg.stopDeadline(o.cfg.CoreStopTimeout)
	total += time.Duration(n+2) * o.cfg.ControlCallTimeout
	return total
}
