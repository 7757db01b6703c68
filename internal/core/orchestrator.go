package core

import (
	"context"
	"fmt"

	"github.com/giantswarm/ranenv/internal/entity"
	"github.com/giantswarm/ranenv/internal/metrics"
	"github.com/giantswarm/ranenv/internal/task"
)

// Orchestrator sequences lifecycle calls across the entities of a Network.
// It holds no per-run state and is safe for concurrent use on disjoint
// networks.
type Orchestrator struct {
	cfg Config
	rec *metrics.Recorder
}

// NewOrchestrator creates an Orchestrator. rec may be nil.
//
// Panics if cfg.Validate reports any error; invalid configuration is a
// programmer error.
func NewOrchestrator(cfg Config, rec *metrics.Recorder) *Orchestrator {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("ranenv: invalid orchestrator config: %v", err))
	}
	return &Orchestrator{cfg: cfg, rec: rec}
}

// Config returns the orchestrator configuration.
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// StartAndAttach starts the network and attaches every UE. It returns the
// attach records of the UEs that attached.
func (o *Orchestrator) StartAndAttach(ctx context.Context, net Network, opts StartOptions) (AttachMap, error) {
	if err := o.StartNetwork(ctx, net, opts); err != nil {
		return nil, err
	}
	return o.AttachUEs(ctx, net)
}

// StartNetwork registers every UE subscriber with the core-network, then
// starts the core-network and the base-station, in that order.
//
// A remote refusal to start returns an error matching ErrStartFailure;
// transport errors are returned wrapped but otherwise unchanged.
func (o *Orchestrator) StartNetwork(ctx context.Context, net Network, opts StartOptions) error {
	if err := net.Validate(); err != nil {
		return err
	}
	log := Logger()

	// The core-network needs the full subscriber set before it starts.
	var ueForBaseStation entity.Definition
	for i, ue := range net.UEs {
		def, err := o.definition(ctx, ue)
		if err != nil {
			return fmt.Errorf("get %s definition: %w", ueName(i), err)
		}
		if err := call(ctx, o.cfg.ControlCallTimeout, func(c context.Context) error {
			return net.Core.AddSubscriber(c, def.Subscriber)
		}); err != nil {
			return fmt.Errorf("add %s subscriber: %w", ueName(i), err)
		}
		if def.RadioAddress != "" {
			ueForBaseStation = def
		}
	}

	coreParams := entity.StartParams{Timeout: o.cfg.CoreStartupTimeout}
	if err := call(ctx, o.cfg.remoteDeadline(o.cfg.CoreStartupTimeout), func(c context.Context) error {
		return net.Core.Start(c, coreParams)
	}); err != nil {
		return classifyStart(coreName, err)
	}
	log.Info("core-network started", "entity", net.Core.ID())

	coreDef, err := o.definition(ctx, net.Core)
	if err != nil {
		return fmt.Errorf("get %s definition: %w", coreName, err)
	}

	gnbParams := entity.BaseStationStartParams{
		UE:   ueForBaseStation,
		Core: coreDef,
		Start: entity.StartParams{
			Timeout:      o.cfg.BaseStationStartupTimeout,
			PreCommands:  opts.BaseStationPreCommands,
			PostCommands: opts.BaseStationPostCommands,
		},
	}
	if err := call(ctx, o.cfg.remoteDeadline(o.cfg.BaseStationStartupTimeout), func(c context.Context) error {
		return net.BaseStation.Start(c, gnbParams)
	}); err != nil {
		return classifyStart(baseStationName, err)
	}
	log.Info("base-station started", "entity", net.BaseStation.ID())

	return nil
}

// AttachUEs starts every UE against the running base-station and
// core-network, then waits for all of them to attach concurrently.
//
// UEs are started one after another because each start depends on shared
// base-station state. A UE whose attach wait fails or times out is left
// out of the result. If none attached, AttachUEs returns ErrAttachTimeout.
func (o *Orchestrator) AttachUEs(ctx context.Context, net Network) (AttachMap, error) {
	if err := net.Validate(); err != nil {
		return nil, err
	}
	log := Logger()

	gnbDef, err := o.definition(ctx, net.BaseStation)
	if err != nil {
		return nil, fmt.Errorf("get %s definition: %w", baseStationName, err)
	}
	coreDef, err := o.definition(ctx, net.Core)
	if err != nil {
		return nil, fmt.Errorf("get %s definition: %w", coreName, err)
	}

	params := entity.UEStartParams{
		BaseStation: gnbDef,
		Core:        coreDef,
		Start:       entity.StartParams{Timeout: o.cfg.UEStartupTimeout},
	}
	subs := make([]entity.Subscriber, len(net.UEs))
	for i, ue := range net.UEs {
		def, err := o.definition(ctx, ue)
		if err != nil {
			return nil, fmt.Errorf("get %s definition: %w", ueName(i), err)
		}
		subs[i] = def.Subscriber
		if err := call(ctx, o.cfg.remoteDeadline(o.cfg.UEStartupTimeout), func(c context.Context) error {
			return ue.Start(c, params)
		}); err != nil {
			return nil, classifyStart(ueName(i), err)
		}
		log.Info("UE started", "ue", ueName(i), "entity", ue.ID())
	}

	results := task.All(ctx, task.Options{
		Limit:   o.cfg.MaxParallel,
		Timeout: o.cfg.remoteDeadline(o.cfg.AttachTimeout),
	}, net.UEs, func(c context.Context, ue entity.UE) (entity.AttachInfo, error) {
		return ue.WaitUntilAttached(c, o.cfg.AttachTimeout)
	})

	var attached AttachMap
	for i, r := range results {
		ue := net.UEs[i]
		o.rec.Attach(r.OK())
		if !r.OK() {
			log.Warn("UE did not attach", "ue", ueName(i), "entity", ue.ID(), "error", r.Err)
			continue
		}
		log.Info("UE attached", "ue", ueName(i), "entity", ue.ID(), "imsi", subs[i].IMSI,
			"address", r.Value.Address, "gateway", r.Value.GatewayAddress)
		attached = append(attached, Attachment{Name: ueName(i), UE: ue, Subscriber: subs[i], Info: r.Value})
	}

	if len(attached) == 0 {
		return nil, ErrAttachTimeout.Wrapf("none of %d UEs attached within %s", len(net.UEs), o.cfg.AttachTimeout)
	}
	return attached, nil
}

func (o *Orchestrator) definition(ctx context.Context, e entity.Entity) (entity.Definition, error) {
	return callValue(ctx, o.cfg.ControlCallTimeout, e.GetDefinition)
}
