package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giantswarm/ranenv/internal/entity"
	"github.com/giantswarm/ranenv/internal/task"
	"github.com/giantswarm/ranenv/internal/verdict"
)

// TrafficSpec describes the traffic each attached UE generates.
type TrafficSpec struct {
	Protocol  entity.Protocol
	Direction entity.Direction
	Duration  time.Duration
	// Bitrate is the requested rate in bits per second.
	Bitrate uint64
	// ThresholdRatio is the fraction of Bitrate a measured rate must reach,
	// e.g. 0.8. Measurements are noisy, so exact equality is never required.
	ThresholdRatio float64
}

// Validate reports every unusable field, joined and wrapped in
// ErrInvalidTraffic.
func (s TrafficSpec) Validate() error {
	var errs []error
	if !s.Protocol.IsValid() {
		errs = append(errs, fmt.Errorf("unknown protocol %s", s.Protocol))
	}
	if !s.Direction.IsValid() {
		errs = append(errs, fmt.Errorf("unknown direction %s", s.Direction))
	}
	if s.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be greater than 0, got %s", s.Duration))
	}
	if s.Bitrate == 0 {
		errs = append(errs, errors.New("bitrate must be greater than 0"))
	}
	if s.ThresholdRatio <= 0 || s.ThresholdRatio > 1 {
		errs = append(errs, fmt.Errorf("threshold ratio must be in (0, 1], got %g", s.ThresholdRatio))
	}
	if err := errors.Join(errs...); err != nil {
		return ErrInvalidTraffic.Wrapf("%w", err)
	}
	return nil
}

// RateVerdict is the classification of one measured rate.
type RateVerdict int

const (
	// RatePass means the rate reached the threshold.
	RatePass RateVerdict = iota
	// RateZero means nothing was measured. It is logged as a warning and
	// does not fail the step.
	RateZero
	// RateLow means the rate stayed below the threshold.
	RateLow
)

// String returns the verdict label used in metrics.
func (v RateVerdict) String() string {
	switch v {
	case RatePass:
		return "pass"
	case RateZero:
		return "zero"
	case RateLow:
		return "low"
	default:
		return fmt.Sprintf("RateVerdict(%d)", int(v))
	}
}

// thresholdTolerance absorbs float rounding in ratio*bitrate so that a
// measurement of exactly that product passes. The slack never reaches
// maxThresholdSlack, so one bit per second below the threshold still fails
// at any rate.
const (
	thresholdTolerance = 1e-12
	maxThresholdSlack  = 0.5
)

// ClassifyRate compares a measured rate against ratio*requested.
func ClassifyRate(measured float64, requested uint64, ratio float64) RateVerdict {
	if measured == 0 {
		return RateZero
	}
	threshold := ratio * float64(requested)
	if threshold-measured > min(threshold*thresholdTolerance, maxThresholdSlack) {
		return RateLow
	}
	return RatePass
}

// Throughput runs spec on every attached UE concurrently. For each UE it
// starts a listener on the core-network, runs the UE-side generator, stops
// the listener and classifies the rates measured there for every requested
// direction.
//
// A generator error is tolerated since the result is read from the
// listener. Listener errors fail that UE only. The step fails with a report
// matching ErrThroughputFailed that lists every violation.
func (o *Orchestrator) Throughput(ctx context.Context, attached AttachMap, core entity.CoreNetwork, spec TrafficSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if core == nil {
		return ErrInvalidNetwork.Wrapf("core-network handle is nil")
	}

	results := task.All(ctx, task.Options{Limit: o.cfg.MaxParallel}, attached,
		func(c context.Context, a Attachment) ([]string, error) {
			return o.exerciseTraffic(c, a, core, spec), nil
		})

	var msgs []string
	for _, r := range results {
		msgs = append(msgs, r.Value...)
	}
	return verdict.Collect(ErrThroughputFailed, "Throughput did not achieve the expected data rate", msgs...).AsError()
}

// exerciseTraffic runs one UE's traffic job and returns its failure
// messages.
func (o *Orchestrator) exerciseTraffic(ctx context.Context, a Attachment, core entity.CoreNetwork, spec TrafficSpec) []string {
	log := Logger().With("ue", a.Name, "address", a.Info.Address,
		"protocol", spec.Protocol.String(), "direction", spec.Direction.String())

	ref, err := callValue(ctx, o.cfg.ControlCallTimeout, func(c context.Context) (entity.ListenerRef, error) {
		return core.StartTrafficListener(c, a.Info.GatewayAddress)
	})
	if err != nil {
		log.Error("start traffic listener failed", "error", err)
		return []string{fmt.Sprintf("%s [%s]: start traffic listener: %v", a.Name, a.Info.Address, err)}
	}

	req := entity.TrafficRequest{
		Server:    ref,
		Duration:  spec.Duration,
		Direction: spec.Direction,
		Protocol:  spec.Protocol,
		Bitrate:   spec.Bitrate,
	}
	gen := task.Go(ctx, o.cfg.remoteDeadline(spec.Duration), func(c context.Context) (struct{}, error) {
		return struct{}{}, a.UE.RunTraffic(c, req)
	})
	log.Info("traffic started", "server", ref.Address, "bitrate", spec.Bitrate, "duration", spec.Duration)

	if _, err := gen.Await(); err != nil {
		log.Debug("traffic generator returned an error; using listener result", "error", err)
	}

	res, err := callValue(ctx, o.cfg.ControlCallTimeout, func(c context.Context) (entity.TrafficResult, error) {
		return core.StopTrafficListener(c, ref)
	})
	if err != nil {
		log.Error("stop traffic listener failed", "error", err)
		return []string{fmt.Sprintf("%s [%s]: stop traffic listener: %v", a.Name, a.Info.Address, err)}
	}
	log.Info("traffic result", "downlink_bps", res.Downlink, "uplink_bps", res.Uplink)

	var msgs []string
	if spec.Direction.HasDownlink() {
		if msg := o.checkRate(a, entity.Downlink, res.Downlink, spec); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	if spec.Direction.HasUplink() {
		if msg := o.checkRate(a, entity.Uplink, res.Uplink, spec); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// checkRate classifies one direction and returns a failure message for a
// low rate.
func (o *Orchestrator) checkRate(a Attachment, dir entity.Direction, measured float64, spec TrafficSpec) string {
	v := ClassifyRate(measured, spec.Bitrate, spec.ThresholdRatio)
	o.rec.Throughput(a.Name, dir.String(), measured, v.String())

	log := Logger().With("ue", a.Name, "address", a.Info.Address, "direction", dir.String())
	switch v {
	case RateZero:
		log.Warn("bitrate is 0", "requested_bps", spec.Bitrate)
	case RateLow:
		log.Warn("bitrate too low", "requested_bps", spec.Bitrate, "measured_bps", measured)
		return fmt.Sprintf("%s [%s] %s bitrate too low. Requested: %d - Measured: %.0f",
			a.Name, a.Info.Address, dir, spec.Bitrate, measured)
	case RatePass:
	}
	return ""
}
