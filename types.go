package ranenv

import (
	"github.com/giantswarm/ranenv/internal/core"
	"github.com/giantswarm/ranenv/internal/entity"
	"github.com/giantswarm/ranenv/internal/verdict"
)

// Entity handles and their data model.
type (
	Entity      = entity.Entity
	UE          = entity.UE
	BaseStation = entity.BaseStation
	CoreNetwork = entity.CoreNetwork

	Kind                   = entity.Kind
	Subscriber             = entity.Subscriber
	Definition             = entity.Definition
	StartParams            = entity.StartParams
	UEStartParams          = entity.UEStartParams
	BaseStationStartParams = entity.BaseStationStartParams
	StopOutcome            = entity.StopOutcome
	Metrics                = entity.Metrics
	AttachInfo             = entity.AttachInfo
	PingResult             = entity.PingResult
	Direction              = entity.Direction
	Protocol               = entity.Protocol
	ListenerRef            = entity.ListenerRef
	TrafficRequest         = entity.TrafficRequest
	TrafficResult          = entity.TrafficResult
)

// Entity kinds.
const (
	KindUE          = entity.KindUE
	KindBaseStation = entity.KindBaseStation
	KindCoreNetwork = entity.KindCoreNetwork
)

// Traffic directions and protocols.
const (
	Downlink      = entity.Downlink
	Uplink        = entity.Uplink
	Bidirectional = entity.Bidirectional

	TCP = entity.TCP
	UDP = entity.UDP
)

// Orchestration inputs and results.
type (
	Network       = core.Network
	StartOptions  = core.StartOptions
	Attachment    = core.Attachment
	AttachMap     = core.AttachMap
	TrafficSpec   = core.TrafficSpec
	RateVerdict   = core.RateVerdict
	StopOptions   = core.StopOptions
	Teardown      = core.Teardown
	EntityOutcome = core.EntityOutcome
	ArtifactSink  = core.ArtifactSink

	// Report is the aggregated failure returned by Ping, Throughput and
	// Stop.
	Report = verdict.Report
)

// Rate verdicts of ClassifyRate.
const (
	RatePass = core.RatePass
	RateZero = core.RateZero
	RateLow  = core.RateLow
)

// DefaultStopOptions returns log search on with warnings escalated and the
// residual metrics check off.
func DefaultStopOptions() StopOptions {
	return core.DefaultStopOptions()
}

// ClassifyRate compares a measured rate in bits per second against
// ratio*requested.
func ClassifyRate(measured float64, requested uint64, ratio float64) RateVerdict {
	return core.ClassifyRate(measured, requested, ratio)
}
