package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/giantswarm/ranenv/internal/entity"
	"github.com/giantswarm/ranenv/internal/verdict"
)

// callLog records the order of remote calls across every fake of a
// network.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// concurrency tracks the peak number of overlapping calls.
type concurrency struct {
	cur  atomic.Int32
	peak atomic.Int32
}

func (c *concurrency) enter() {
	n := c.cur.Add(1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

func (c *concurrency) leave() { c.cur.Add(-1) }

// occupy counts one call on g, which may be nil, for d or until ctx is
// done.
func occupy(ctx context.Context, g *concurrency, d time.Duration) error {
	if g != nil {
		g.enter()
		defer g.leave()
	}
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type fakeEntity struct {
	id   string
	kind entity.Kind
	log  *callLog

	def        entity.Definition
	defErr     error
	startErr   error
	stopOut    entity.StopOutcome
	stopErr    error
	metrics    entity.Metrics
	metricsErr error

	// stopTimeout and stopCtxErr are written by Stop.
	stopTimeout time.Duration
	stopCtxErr  error
}

func (f *fakeEntity) ID() string         { return f.id }
func (f *fakeEntity) Kind() entity.Kind { return f.kind }

func (f *fakeEntity) GetDefinition(context.Context) (entity.Definition, error) {
	f.log.add("%s.GetDefinition", f.id)
	return f.def, f.defErr
}

func (f *fakeEntity) Stop(ctx context.Context, timeout time.Duration) (entity.StopOutcome, error) {
	f.log.add("%s.Stop", f.id)
	f.stopTimeout = timeout
	f.stopCtxErr = ctx.Err()
	return f.stopOut, f.stopErr
}

func (f *fakeEntity) GetMetrics(context.Context) (entity.Metrics, error) {
	f.log.add("%s.GetMetrics", f.id)
	return f.metrics, f.metricsErr
}

type fakeUE struct {
	fakeEntity

	startParams entity.UEStartParams
	attach      entity.AttachInfo
	attachErr   error
	// attachDelay holds WaitUntilAttached; attachBlock holds it until ctx
	// is done.
	attachDelay time.Duration
	attachBlock bool
	attachGauge *concurrency

	ping       entity.PingResult
	pingErr    error
	pingTarget string
	pingDelay  time.Duration
	pingGauge  *concurrency

	trafficErr   error
	trafficReq   entity.TrafficRequest
	trafficDelay time.Duration
	trafficGauge *concurrency
}

func (f *fakeUE) Start(_ context.Context, p entity.UEStartParams) error {
	f.log.add("%s.Start", f.id)
	f.startParams = p
	return f.startErr
}

func (f *fakeUE) WaitUntilAttached(ctx context.Context, _ time.Duration) (entity.AttachInfo, error) {
	if f.attachBlock {
		<-ctx.Done()
		return entity.AttachInfo{}, ctx.Err()
	}
	if err := occupy(ctx, f.attachGauge, f.attachDelay); err != nil {
		return entity.AttachInfo{}, err
	}
	return f.attach, f.attachErr
}

func (f *fakeUE) Ping(ctx context.Context, address string, _ int) (entity.PingResult, error) {
	f.pingTarget = address
	if err := occupy(ctx, f.pingGauge, f.pingDelay); err != nil {
		return entity.PingResult{}, err
	}
	return f.ping, f.pingErr
}

func (f *fakeUE) RunTraffic(ctx context.Context, req entity.TrafficRequest) error {
	f.trafficReq = req
	if err := occupy(ctx, f.trafficGauge, f.trafficDelay); err != nil {
		return err
	}
	return f.trafficErr
}

type fakeBaseStation struct {
	fakeEntity
	startParams entity.BaseStationStartParams
}

func (f *fakeBaseStation) Start(_ context.Context, p entity.BaseStationStartParams) error {
	f.log.add("%s.Start", f.id)
	f.startParams = p
	return f.startErr
}

type fakeCore struct {
	fakeEntity

	mu          sync.Mutex
	subscribers []entity.Subscriber
	startParams entity.StartParams

	// Keyed by UE address or gateway. Missing entries succeed.
	pings         map[string]entity.PingResult
	pingErrs      map[string]error
	listenErrs    map[string]error
	results       map[string]entity.TrafficResult
	stopListenErr map[string]error

	// pingDelay and pingGauge apply to every Ping call.
	pingDelay time.Duration
	pingGauge *concurrency
}

func (f *fakeCore) Start(_ context.Context, p entity.StartParams) error {
	f.log.add("%s.Start", f.id)
	f.startParams = p
	return f.startErr
}

func (f *fakeCore) AddSubscriber(_ context.Context, sub entity.Subscriber) error {
	f.log.add("%s.AddSubscriber(%s)", f.id, sub.IMSI)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, sub)
	return nil
}

func (f *fakeCore) Ping(ctx context.Context, address string, count int) (entity.PingResult, error) {
	if err := occupy(ctx, f.pingGauge, f.pingDelay); err != nil {
		return entity.PingResult{}, err
	}
	if err := f.pingErrs[address]; err != nil {
		return entity.PingResult{}, err
	}
	if r, ok := f.pings[address]; ok {
		return r, nil
	}
	return entity.PingResult{Status: true, Transmitted: count, Received: count}, nil
}

func (f *fakeCore) StartTrafficListener(_ context.Context, address string) (entity.ListenerRef, error) {
	if err := f.listenErrs[address]; err != nil {
		return entity.ListenerRef{}, err
	}
	return entity.ListenerRef{ID: "listener-" + address, Address: address, Port: 5201}, nil
}

func (f *fakeCore) StopTrafficListener(_ context.Context, ref entity.ListenerRef) (entity.TrafficResult, error) {
	if err := f.stopListenErr[ref.Address]; err != nil {
		return entity.TrafficResult{}, err
	}
	return f.results[ref.Address], nil
}

// fakeSink records artifact requests.
type fakeSink struct {
	mu       sync.Mutex
	entities []string
}

func (s *fakeSink) RequestArtifacts(name, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = append(s.entities, name)
}

func (s *fakeSink) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entities...)
}

// testNetwork is a network of fakes sharing one call log.
type testNetwork struct {
	log  *callLog
	ues  []*fakeUE
	gnb  *fakeBaseStation
	core *fakeCore
}

// newTestNetwork builds a network of n UEs that all start, attach and
// stop cleanly. UE i has address 10.45.0.<i+2> and gateway 10.45.0.1.
func newTestNetwork(n int) *testNetwork {
	log := &callLog{}
	tn := &testNetwork{
		log: log,
		gnb: &fakeBaseStation{fakeEntity: fakeEntity{
			id: "gnb", kind: entity.KindBaseStation, log: log,
			def: entity.Definition{ID: "gnb", Kind: entity.KindBaseStation},
		}},
		core: &fakeCore{fakeEntity: fakeEntity{
			id: "core", kind: entity.KindCoreNetwork, log: log,
			def: entity.Definition{ID: "core", Kind: entity.KindCoreNetwork},
		}},
	}
	for i := range n {
		id := fmt.Sprintf("ue%d", i+1)
		tn.ues = append(tn.ues, &fakeUE{
			fakeEntity: fakeEntity{
				id: id, kind: entity.KindUE, log: log,
				def: entity.Definition{
					ID:         id,
					Kind:       entity.KindUE,
					Subscriber: entity.Subscriber{IMSI: fmt.Sprintf("00101000000000%d", i+1)},
				},
			},
			attach: entity.AttachInfo{
				Address:        fmt.Sprintf("10.45.0.%d", i+2),
				GatewayAddress: "10.45.0.1",
			},
			ping: entity.PingResult{Status: true, Transmitted: 3, Received: 3},
		})
	}
	return tn
}

func (tn *testNetwork) network() Network {
	ues := make([]entity.UE, len(tn.ues))
	for i, ue := range tn.ues {
		ues[i] = ue
	}
	return Network{UEs: ues, BaseStation: tn.gnb, Core: tn.core}
}

// attachAll builds the AttachMap every UE of tn would produce.
func (tn *testNetwork) attachAll() AttachMap {
	m := make(AttachMap, len(tn.ues))
	for i, ue := range tn.ues {
		m[i] = Attachment{Name: ueName(i), UE: ue, Subscriber: ue.def.Subscriber, Info: ue.attach}
	}
	return m
}

// callsWithSuffix filters calls ending in suffix, e.g. ".Stop".
func callsWithSuffix(calls []string, suffix string) []string {
	var out []string
	for _, c := range calls {
		if len(c) >= len(suffix) && c[len(c)-len(suffix):] == suffix {
			out = append(out, c)
		}
	}
	return out
}

// asReport extracts the aggregated report from err.
func asReport(err error) (*verdict.Report, bool) {
	var r *verdict.Report
	ok := errors.As(err, &r)
	return r, ok
}

func testOrchestrator() *Orchestrator {
	return NewOrchestrator(validConfig(), nil)
}
