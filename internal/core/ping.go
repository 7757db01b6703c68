package core

import (
	"context"
	"fmt"

	"github.com/giantswarm/ranenv/internal/entity"
	"github.com/giantswarm/ranenv/internal/task"
	"github.com/giantswarm/ranenv/internal/verdict"
)

// Probe direction labels.
const (
	probeUEToCore = "ue_to_core"
	probeCoreToUE = "core_to_ue"
)

// Ping probes every attached UE in both directions at once: the UE pings
// its gateway and the core-network pings the UE, count packets each. All
// UEs are probed concurrently.
//
// The step passes only if every probe of every UE passed. Otherwise it
// returns a report matching ErrPingFailed that lists each failed probe.
func (o *Orchestrator) Ping(ctx context.Context, attached AttachMap, core entity.CoreNetwork, count int) error {
	if count <= 0 {
		return ErrInvalidTraffic.Wrapf("ping count must be greater than 0, got %d", count)
	}
	if core == nil {
		return ErrInvalidNetwork.Wrapf("core-network handle is nil")
	}
	deadline := o.cfg.pingDeadline(count)

	results := task.All(ctx, task.Options{Limit: o.cfg.MaxParallel}, attached,
		func(c context.Context, a Attachment) ([]string, error) {
			up := task.Go(c, deadline, func(pc context.Context) (entity.PingResult, error) {
				return a.UE.Ping(pc, a.Info.GatewayAddress, count)
			})
			down := task.Go(c, deadline, func(pc context.Context) (entity.PingResult, error) {
				return core.Ping(pc, a.Info.Address, count)
			})
			upRes, upErr := up.Await()
			downRes, downErr := down.Await()

			var failed []string
			if msg := o.reportProbe(a, probeUEToCore, "UE -> 5GC", upRes, upErr); msg != "" {
				failed = append(failed, msg)
			}
			if msg := o.reportProbe(a, probeCoreToUE, "5GC -> UE", downRes, downErr); msg != "" {
				failed = append(failed, msg)
			}
			return failed, nil
		})

	var msgs []string
	for _, r := range results {
		msgs = append(msgs, r.Value...)
	}
	return verdict.Collect(ErrPingFailed, "Ping. Some packets got lost", msgs...).AsError()
}

// reportProbe logs one probe and returns a failure message, or "" when the
// probe passed. A transport error counts as a failed probe.
func (o *Orchestrator) reportProbe(a Attachment, direction, label string, res entity.PingResult, err error) string {
	log := Logger().With("ue", a.Name, "address", a.Info.Address, "direction", direction)
	ok := err == nil && res.Status
	o.rec.PingProbe(direction, ok)

	switch {
	case err != nil:
		log.Error("ping probe failed", "error", err)
		return fmt.Sprintf("%s [%s] %s: %v", a.Name, a.Info.Address, label, err)
	case !res.Status:
		log.Error("ping probe lost packets", "result", res.String())
		return fmt.Sprintf("%s [%s] %s: %s", a.Name, a.Info.Address, label, res)
	default:
		log.Info("ping probe succeeded", "result", res.String())
		return ""
	}
}
