package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giantswarm/ranenv/internal/entity"
)

// Names used for the base-station and core-network in logs and reports.
const (
	baseStationName = "GNB"
	coreName        = "5GC"
)

// Network is the set of handles one orchestration drives.
type Network struct {
	UEs         []entity.UE
	BaseStation entity.BaseStation
	Core        entity.CoreNetwork
}

// Validate reports every missing handle, joined and wrapped in
// ErrInvalidNetwork.
func (n Network) Validate() error {
	var errs []error
	if len(n.UEs) == 0 {
		errs = append(errs, errors.New("at least one UE is required"))
	}
	for i, ue := range n.UEs {
		if ue == nil {
			errs = append(errs, fmt.Errorf("%s handle is nil", ueName(i)))
		}
	}
	if n.BaseStation == nil {
		errs = append(errs, errors.New("base-station handle is nil"))
	}
	if n.Core == nil {
		errs = append(errs, errors.New("core-network handle is nil"))
	}
	if err := errors.Join(errs...); err != nil {
		return ErrInvalidNetwork.Wrapf("%w", err)
	}
	return nil
}

// StartOptions are the per-run arguments of StartNetwork.
type StartOptions struct {
	// BaseStationPreCommands and BaseStationPostCommands are shell
	// commands the base-station runs before and after its own start, for
	// test-environment setup.
	BaseStationPreCommands  string
	BaseStationPostCommands string
}

// Attachment pairs an attached UE with its attach record.
type Attachment struct {
	// Name is the UE's position-derived name, e.g. UE_2.
	Name string
	UE   entity.UE
	// Subscriber is the identity the UE attached with.
	Subscriber entity.Subscriber
	Info       entity.AttachInfo
}

// AttachMap is the ordered set of attached UEs, in input order. It is built
// once by AttachUEs and only read afterwards.
type AttachMap []Attachment

// Lookup returns the attach record of ue. Handles are compared with ==,
// so implementations should be pointer types.
func (m AttachMap) Lookup(ue entity.UE) (entity.AttachInfo, bool) {
	for _, a := range m {
		if a.UE == ue {
			return a.Info, true
		}
	}
	return entity.AttachInfo{}, false
}

// UEs returns the attached UE handles in order.
func (m AttachMap) UEs() []entity.UE {
	out := make([]entity.UE, len(m))
	for i, a := range m {
		out[i] = a.UE
	}
	return out
}

// ArtifactSink receives artifact capture requests raised by teardown.
type ArtifactSink interface {
	RequestArtifacts(entity, reason string)
}

type discardSink struct{}

func (discardSink) RequestArtifacts(string, string) {}

func ueName(i int) string {
	return fmt.Sprintf("UE_%d", i+1)
}

// call runs fn under a deadline of d; d <= 0 leaves ctx unbounded.
func call(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	_, err := callValue(ctx, d, func(c context.Context) (struct{}, error) {
		return struct{}{}, fn(c)
	})
	return err
}

func callValue[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return fn(ctx)
}
