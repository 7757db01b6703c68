package entity

import (
	"context"
	"time"

	"github.com/giantswarm/ranenv/internal/sentinel"
)

// ErrAborted marks a remote refusal to start, as opposed to a transport
// failure. Handle implementations must wrap it so errors.Is matches.
const ErrAborted = sentinel.Error("remote entity aborted")

// Entity is the capability set common to every remote element.
type Entity interface {
	// ID returns a stable identifier for log output.
	ID() string
	Kind() Kind
	GetDefinition(ctx context.Context) (Definition, error)
	// Stop stops the entity. A zero timeout lets the entity pick its own.
	Stop(ctx context.Context, timeout time.Duration) (StopOutcome, error)
	GetMetrics(ctx context.Context) (Metrics, error)
}

// UE is a handle to a simulated user-equipment instance.
type UE interface {
	Entity
	Start(ctx context.Context, params UEStartParams) error
	WaitUntilAttached(ctx context.Context, timeout time.Duration) (AttachInfo, error)
	Ping(ctx context.Context, address string, count int) (PingResult, error)
	// RunTraffic generates traffic for req.Duration against req.Server.
	RunTraffic(ctx context.Context, req TrafficRequest) error
}

// BaseStation is a handle to a simulated base-station.
type BaseStation interface {
	Entity
	Start(ctx context.Context, params BaseStationStartParams) error
}

// CoreNetwork is a handle to a simulated core-network.
type CoreNetwork interface {
	Entity
	Start(ctx context.Context, params StartParams) error
	AddSubscriber(ctx context.Context, sub Subscriber) error
	Ping(ctx context.Context, address string, count int) (PingResult, error)
	// StartTrafficListener starts a traffic server reachable from the UE
	// whose gateway is address.
	StartTrafficListener(ctx context.Context, address string) (ListenerRef, error)
	StopTrafficListener(ctx context.Context, ref ListenerRef) (TrafficResult, error)
}
