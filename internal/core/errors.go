package core

import (
	"errors"
	"fmt"

	"github.com/giantswarm/ranenv/internal/entity"
	"github.com/giantswarm/ranenv/internal/sentinel"
)

const (
	// ErrStartFailure is returned when the core-network, base-station or a
	// UE refused to start. Transport errors during start do not match it.
	ErrStartFailure = sentinel.Error("start failure")

	// ErrAttachTimeout is returned when no UE attached within the attach
	// timeout.
	ErrAttachTimeout = sentinel.Error("attach timeout reached")

	// ErrPingFailed is matched by the report returned when any ping probe
	// lost packets or failed.
	ErrPingFailed = sentinel.Error("ping failed")

	// ErrThroughputFailed is matched by the report returned when any UE
	// measured a rate below the acceptance threshold.
	ErrThroughputFailed = sentinel.Error("throughput below threshold")

	// ErrStopFailed is matched by the report returned when any entity
	// crashed, failed to stop, or logged escalated errors or warnings.
	ErrStopFailed = sentinel.Error("stop failed")

	// ErrResidualMetrics is matched by the report returned when any entity
	// reports KOs or retransmissions after stopping.
	ErrResidualMetrics = sentinel.Error("residual metrics check failed")

	// ErrInvalidNetwork is returned when a Network is missing handles.
	ErrInvalidNetwork = sentinel.Error("invalid network")

	// ErrInvalidTraffic is returned for an unusable TrafficSpec or ping count.
	ErrInvalidTraffic = sentinel.Error("invalid traffic parameters")
)

// classifyStart turns a remote refusal into ErrStartFailure and wraps any
// other error with the entity name only.
func classifyStart(name string, err error) error {
	if errors.Is(err, entity.ErrAborted) {
		return ErrStartFailure.Wrapf("%s refused to start: %w", name, err)
	}
	return fmt.Errorf("start %s: %w", name, err)
}
