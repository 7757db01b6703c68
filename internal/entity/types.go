package entity

import (
	"fmt"
	"time"
)

// Kind identifies the role of a remote entity.
type Kind int

const (
	KindUE Kind = iota
	KindBaseStation
	KindCoreNetwork
)

// String returns the short name used in log output and failure messages.
func (k Kind) String() string {
	switch k {
	case KindUE:
		return "UE"
	case KindBaseStation:
		return "GNB"
	case KindCoreNetwork:
		return "5GC"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Subscriber is the identity a UE presents to the core-network.
type Subscriber struct {
	IMSI string
	Key  string
	OPC  string
}

// Definition describes a remote entity as reported by GetDefinition.
type Definition struct {
	ID         string
	Kind       Kind
	Subscriber Subscriber
	// RadioAddress is the endpoint of the UE's simulated radio link. The
	// base-station needs it to connect to a UE; it is empty when the entity
	// does not expose one.
	RadioAddress string
	Attributes   map[string]string
}

// StartParams carries the common start arguments. A zero Timeout lets the
// entity pick its own bound.
type StartParams struct {
	Timeout      time.Duration
	PreCommands  string
	PostCommands string
}

// UEStartParams is the argument of UE.Start.
type UEStartParams struct {
	BaseStation Definition
	Core        Definition
	Start       StartParams
}

// BaseStationStartParams is the argument of BaseStation.Start.
type BaseStationStartParams struct {
	UE    Definition
	Core  Definition
	Start StartParams
}

// StopOutcome is what an entity reports when it stops.
type StopOutcome struct {
	ExitCode     int
	ErrorCount   int
	FirstError   string
	WarningCount int
	FirstWarning string
}

// Crashed reports whether the entity exited with a non-zero code.
func (o StopOutcome) Crashed() bool {
	return o.ExitCode != 0
}

// Metrics are residual counters read after an entity stopped.
type Metrics struct {
	KOs             uint64
	Retransmissions uint64
}

// AttachInfo is the result of a successful UE attach.
type AttachInfo struct {
	Address        string
	GatewayAddress string
	Attributes     map[string]string
}

// PingResult is the outcome of one latency probe.
type PingResult struct {
	Status      bool
	Transmitted int
	Received    int
	Summary     string
}

// String renders the result for log output.
func (r PingResult) String() string {
	s := fmt.Sprintf("status=%t transmitted=%d received=%d", r.Status, r.Transmitted, r.Received)
	if r.Summary != "" {
		s += " " + r.Summary
	}
	return s
}

// Direction selects which way traffic flows relative to the UE.
type Direction int

const (
	Downlink Direction = iota
	Uplink
	Bidirectional
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Downlink:
		return "downlink"
	case Uplink:
		return "uplink"
	case Bidirectional:
		return "bidirectional"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == Downlink || d == Uplink || d == Bidirectional
}

// HasDownlink reports whether downlink traffic is requested.
func (d Direction) HasDownlink() bool {
	return d == Downlink || d == Bidirectional
}

// HasUplink reports whether uplink traffic is requested.
func (d Direction) HasUplink() bool {
	return d == Uplink || d == Bidirectional
}

// Protocol is the transport protocol of a traffic job.
type Protocol int

const (
	TCP Protocol = iota
	UDP
)

// String returns the lowercase protocol name.
func (p Protocol) String() string {
	switch p {
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	default:
		return fmt.Sprintf("Protocol(%d)", int(p))
	}
}

// IsValid reports whether p is a known protocol.
func (p Protocol) IsValid() bool {
	return p == TCP || p == UDP
}

// ListenerRef references a traffic listener running on the core-network.
type ListenerRef struct {
	ID      string
	Address string
	Port    int
}

// TrafficRequest describes one traffic generation job.
type TrafficRequest struct {
	Server    ListenerRef
	Duration  time.Duration
	Direction Direction
	Protocol  Protocol
	// Bitrate is the requested rate in bits per second.
	Bitrate uint64
}

// TrafficResult is the rate measured by the listener, in bits per second.
type TrafficResult struct {
	Downlink float64
	Uplink   float64
}
