package ranenv

import (
	"github.com/giantswarm/ranenv/internal/core"
	"github.com/giantswarm/ranenv/internal/entity"
)

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrStartFailure is returned when an entity refused to start.
	// Transport failures during start do not match it.
	ErrStartFailure = core.ErrStartFailure

	// ErrAttachTimeout is returned by AttachUEs when no UE attached.
	ErrAttachTimeout = core.ErrAttachTimeout

	// ErrPingFailed is matched by the report of a failed Ping.
	ErrPingFailed = core.ErrPingFailed

	// ErrThroughputFailed is matched by the report of a failed Throughput.
	ErrThroughputFailed = core.ErrThroughputFailed

	// ErrStopFailed is matched by the report of a failed stop check.
	ErrStopFailed = core.ErrStopFailed

	// ErrResidualMetrics is matched by the report of a failed residual
	// metrics check.
	ErrResidualMetrics = core.ErrResidualMetrics

	// ErrInvalidNetwork is returned when a Network is missing handles.
	ErrInvalidNetwork = core.ErrInvalidNetwork

	// ErrInvalidTraffic is returned for an unusable TrafficSpec or ping
	// count.
	ErrInvalidTraffic = core.ErrInvalidTraffic

	// ErrAborted marks a remote refusal to start. Custom entity handles
	// must wrap it so that StartNetwork and AttachUEs report
	// ErrStartFailure.
	ErrAborted = entity.ErrAborted
)
