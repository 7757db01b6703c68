package rpcclient

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/giantswarm/ranenv/internal/entity"
)

// handle implements the calls common to every entity.
type handle struct {
	conn    grpc.ClientConnInterface
	service string
	id      string
	kind    entity.Kind
}

func (h *handle) ID() string        { return h.id }
func (h *handle) Kind() entity.Kind { return h.kind }

func (h *handle) call(ctx context.Context, method string, req fields) (*structpb.Struct, error) {
	return invoke(ctx, h.conn, h.service, method, req)
}

func (h *handle) GetDefinition(ctx context.Context) (entity.Definition, error) {
	resp, err := h.call(ctx, "GetDefinition", fields{})
	if err != nil {
		return entity.Definition{}, err
	}
	return decodeDefinition(resp, h.kind), nil
}

func (h *handle) Stop(ctx context.Context, timeout time.Duration) (entity.StopOutcome, error) {
	resp, err := h.call(ctx, "Stop", fields{"timeout_seconds": seconds(timeout)})
	if err != nil {
		return entity.StopOutcome{}, err
	}
	return decodeStopOutcome(resp), nil
}

func (h *handle) GetMetrics(ctx context.Context) (entity.Metrics, error) {
	resp, err := h.call(ctx, "GetMetrics", fields{})
	if err != nil {
		return entity.Metrics{}, err
	}
	return decodeMetrics(resp), nil
}

// UE is a gRPC handle to a remote UE.
type UE struct {
	handle
}

var _ entity.UE = (*UE)(nil)

// NewUE returns a handle to the UE agent served on conn. id names the
// handle in log output.
func NewUE(conn grpc.ClientConnInterface, id string) *UE {
	return &UE{handle{conn: conn, service: serviceUE, id: id, kind: entity.KindUE}}
}

func (u *UE) Start(ctx context.Context, p entity.UEStartParams) error {
	_, err := u.call(ctx, "Start", fields{
		"base_station": encodeDefinition(p.BaseStation),
		"core":         encodeDefinition(p.Core),
		"start":        encodeStart(p.Start),
	})
	return err
}

func (u *UE) WaitUntilAttached(ctx context.Context, timeout time.Duration) (entity.AttachInfo, error) {
	resp, err := u.call(ctx, "WaitUntilAttached", fields{"timeout_seconds": seconds(timeout)})
	if err != nil {
		return entity.AttachInfo{}, err
	}
	return entity.AttachInfo{
		Address:        str(resp, "address"),
		GatewayAddress: str(resp, "gateway_address"),
		Attributes:     decodeAttributes(sub(resp, "attributes")),
	}, nil
}

func (u *UE) Ping(ctx context.Context, address string, count int) (entity.PingResult, error) {
	resp, err := u.call(ctx, "Ping", fields{"address": address, "count": count})
	if err != nil {
		return entity.PingResult{}, err
	}
	return decodePing(resp), nil
}

func (u *UE) RunTraffic(ctx context.Context, req entity.TrafficRequest) error {
	_, err := u.call(ctx, "RunTraffic", fields{
		"server":           encodeListener(req.Server),
		"duration_seconds": seconds(req.Duration),
		"direction":        req.Direction.String(),
		"protocol":         req.Protocol.String(),
		"bitrate":          req.Bitrate,
	})
	return err
}

// BaseStation is a gRPC handle to a remote base-station.
type BaseStation struct {
	handle
}

var _ entity.BaseStation = (*BaseStation)(nil)

// NewBaseStation returns a handle to the base-station agent served on conn.
func NewBaseStation(conn grpc.ClientConnInterface, id string) *BaseStation {
	return &BaseStation{handle{conn: conn, service: serviceBaseStation, id: id, kind: entity.KindBaseStation}}
}

func (b *BaseStation) Start(ctx context.Context, p entity.BaseStationStartParams) error {
	_, err := b.call(ctx, "Start", fields{
		"ue":    encodeDefinition(p.UE),
		"core":  encodeDefinition(p.Core),
		"start": encodeStart(p.Start),
	})
	return err
}

// CoreNetwork is a gRPC handle to a remote core-network.
type CoreNetwork struct {
	handle
}

var _ entity.CoreNetwork = (*CoreNetwork)(nil)

// NewCoreNetwork returns a handle to the core-network agent served on conn.
func NewCoreNetwork(conn grpc.ClientConnInterface, id string) *CoreNetwork {
	return &CoreNetwork{handle{conn: conn, service: serviceCore, id: id, kind: entity.KindCoreNetwork}}
}

func (c *CoreNetwork) Start(ctx context.Context, p entity.StartParams) error {
	_, err := c.call(ctx, "Start", encodeStart(p))
	return err
}

func (c *CoreNetwork) AddSubscriber(ctx context.Context, s entity.Subscriber) error {
	_, err := c.call(ctx, "AddSubscriber", fields{"subscriber": encodeSubscriber(s)})
	return err
}

func (c *CoreNetwork) Ping(ctx context.Context, address string, count int) (entity.PingResult, error) {
	resp, err := c.call(ctx, "Ping", fields{"address": address, "count": count})
	if err != nil {
		return entity.PingResult{}, err
	}
	return decodePing(resp), nil
}

func (c *CoreNetwork) StartTrafficListener(ctx context.Context, address string) (entity.ListenerRef, error) {
	resp, err := c.call(ctx, "StartTrafficListener", fields{"address": address})
	if err != nil {
		return entity.ListenerRef{}, err
	}
	return decodeListener(sub(resp, "listener")), nil
}

func (c *CoreNetwork) StopTrafficListener(ctx context.Context, ref entity.ListenerRef) (entity.TrafficResult, error) {
	resp, err := c.call(ctx, "StopTrafficListener", fields{"listener": encodeListener(ref)})
	if err != nil {
		return entity.TrafficResult{}, err
	}
	return entity.TrafficResult{
		Downlink: num(resp, "downlink_bps"),
		Uplink:   num(resp, "uplink_bps"),
	}, nil
}
