package core

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the timeouts and limits of an Orchestrator. All fields are
// immutable after NewOrchestrator.
type Config struct {
	// UEStartupTimeout is passed to every UE start. It matches the radio
	// front-end cold-start budget by default because loading a new image
	// into an SDR dominates UE startup.
	UEStartupTimeout time.Duration
	// BaseStationStartupTimeout is how long the base-station gets to prove
	// it stays alive after start.
	BaseStationStartupTimeout time.Duration
	CoreStartupTimeout        time.Duration
	// AttachTimeout bounds each UE's wait-until-attached call.
	AttachTimeout time.Duration

	// Stop timeouts per entity kind. Zero lets the entity choose.
	UEStopTimeout          time.Duration
	BaseStationStopTimeout time.Duration
	CoreStopTimeout        time.Duration

	// ControlCallTimeout bounds short control calls: definitions, subscriber
	// registration, metrics and traffic listener management.
	ControlCallTimeout time.Duration
	// CallGrace is added to every remote timeout to form the local
	// deadline of the call carrying it.
	CallGrace time.Duration
	// AutoStopTimeout is the local deadline of a stop call whose remote
	// timeout is zero.
	AutoStopTimeout time.Duration
	// PingInterval is the expected spacing between probe packets; the local
	// deadline of a ping is count*PingInterval + CallGrace.
	PingInterval time.Duration

	// MaxParallel caps concurrent per-UE tasks. Zero means unlimited.
	MaxParallel int
}

// Validate returns every violated invariant, joined.
func (c Config) Validate() error {
	var errs []error

	for _, f := range []struct {
		name string
		d    time.Duration
	}{
		{"UE startup timeout", c.UEStartupTimeout},
		{"base-station startup timeout", c.BaseStationStartupTimeout},
		{"core-network startup timeout", c.CoreStartupTimeout},
		{"attach timeout", c.AttachTimeout},
		{"control call timeout", c.ControlCallTimeout},
		{"auto stop timeout", c.AutoStopTimeout},
		{"ping interval", c.PingInterval},
	} {
		if f.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be greater than 0, got %s", f.name, f.d))
		}
	}

	if c.UEStopTimeout < 0 {
		errs = append(errs, fmt.Errorf("UE stop timeout must not be negative, got %s", c.UEStopTimeout))
	}
	if c.BaseStationStopTimeout < 0 {
		errs = append(errs, fmt.Errorf("base-station stop timeout must not be negative, got %s", c.BaseStationStopTimeout))
	}
	if c.CoreStopTimeout < 0 {
		errs = append(errs, fmt.Errorf("core-network stop timeout must not be negative, got %s", c.CoreStopTimeout))
	}
	if c.CallGrace < 0 {
		errs = append(errs, fmt.Errorf("call grace must not be negative, got %s", c.CallGrace))
	}
	if c.MaxParallel < 0 {
		errs = append(errs, errors.New("max parallel must not be negative"))
	}

	return errors.Join(errs...)
}

// remoteDeadline is the local deadline of a call that carries the remote
// timeout d.
func (c Config) remoteDeadline(d time.Duration) time.Duration {
	return d + c.CallGrace
}

// stopDeadline is the local deadline of a stop call with remote timeout d.
func (c Config) stopDeadline(d time.Duration) time.Duration {
	if d == 0 {
		return c.AutoStopTimeout
	}
	return c.remoteDeadline(d)
}

// pingDeadline is the local deadline of a ping of count packets.
func (c Config) pingDeadline(count int) time.Duration {
	return time.Duration(count)*c.PingInterval + c.CallGrace
}
