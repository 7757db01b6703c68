package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/giantswarm/ranenv/internal/entity"
)

var errTransport = errors.New("connection reset")

func TestNewOrchestratorPanicsOnInvalidConfig(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "ranenv: invalid orchestrator config") {
			t.Errorf("panic = %v, want invalid orchestrator config message", r)
		}
	}()

	cfg := validConfig()
	cfg.AttachTimeout = 0
	NewOrchestrator(cfg, nil)
}

func TestStartNetwork_Order(t *testing.T) {
	t.Parallel()

	tn := newTestNetwork(2)
	tn.ues[0].def.RadioAddress = "192.168.1.10"
	tn.ues[1].def.RadioAddress = "192.168.1.11"

	opts := StartOptions{BaseStationPreCommands: "ip link set up", BaseStationPostCommands: "true"}
	if err := testOrchestrator().StartNetwork(context.Background(), tn.network(), opts); err != nil {
		t.Fatalf("StartNetwork() error = %v", err)
	}

	want := []string{
		"ue1.GetDefinition",
		"core.AddSubscriber(001010000000001)",
		"ue2.GetDefinition",
		"core.AddSubscriber(001010000000002)",
		"core.Start",
		"core.GetDefinition",
		"gnb.Start",
	}
	if got := tn.log.list(); !slices.Equal(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}

	cfg := validConfig()
	if tn.core.startParams.Timeout != cfg.CoreStartupTimeout {
		t.Errorf("core start timeout = %s, want %s", tn.core.startParams.Timeout, cfg.CoreStartupTimeout)
	}
	p := tn.gnb.startParams
	if p.UE.ID != "ue2" {
		t.Errorf("base-station UE definition = %q, want last UE with a radio address", p.UE.ID)
	}
	if p.Core.ID != "core" {
		t.Errorf("base-station core definition = %q, want core", p.Core.ID)
	}
	if p.Start.Timeout != cfg.BaseStationStartupTimeout {
		t.Errorf("base-station start timeout = %s, want %s", p.Start.Timeout, cfg.BaseStationStartupTimeout)
	}
	if p.Start.PreCommands != opts.BaseStationPreCommands || p.Start.PostCommands != opts.BaseStationPostCommands {
		t.Errorf("base-station commands = %q/%q, want %q/%q",
			p.Start.PreCommands, p.Start.PostCommands, opts.BaseStationPreCommands, opts.BaseStationPostCommands)
	}
}

func TestStartNetwork_Failures(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup        func(tn *testNetwork)
		wantStart    bool
		wantContains string
		wantGNBStart bool
	}{
		"core refuses to start": {
			setup: func(tn *testNetwork) {
				tn.core.startErr = fmt.Errorf("%w: bad config", entity.ErrAborted)
			},
			wantStart:    true,
			wantContains: "5GC refused to start",
		},
		"base-station refuses to start": {
			setup: func(tn *testNetwork) {
				tn.gnb.startErr = fmt.Errorf("%w: radio busy", entity.ErrAborted)
			},
			wantStart:    true,
			wantContains: "GNB refused to start",
			wantGNBStart: true,
		},
		"core transport error": {
			setup: func(tn *testNetwork) {
				tn.core.startErr = errTransport
			},
			wantContains: "start 5GC",
		},
		"UE definition error": {
			setup: func(tn *testNetwork) {
				tn.ues[0].defErr = errTransport
			},
			wantContains: "get UE_1 definition",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tn := newTestNetwork(1)
			tc.setup(tn)

			err := testOrchestrator().StartNetwork(context.Background(), tn.network(), StartOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrStartFailure); got != tc.wantStart {
				t.Errorf("errors.Is(err, ErrStartFailure) = %t, want %t (err: %v)", got, tc.wantStart, err)
			}
			if !strings.Contains(err.Error(), tc.wantContains) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantContains)
			}
			started := slices.Contains(tn.log.list(), "gnb.Start")
			if started != tc.wantGNBStart {
				t.Errorf("base-station started = %t, want %t", started, tc.wantGNBStart)
			}
		})
	}
}

func TestStartNetwork_InvalidNetwork(t *testing.T) {
	t.Parallel()

	err := testOrchestrator().StartNetwork(context.Background(), Network{UEs: []entity.UE{nil}}, StartOptions{})
	if !errors.Is(err, ErrInvalidNetwork) {
		t.Fatalf("error = %v, want ErrInvalidNetwork", err)
	}
	for _, want := range []string{"UE_1 handle is nil", "base-station handle is nil", "core-network handle is nil"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error = %q, want it to contain %q", err, want)
		}
	}
}

func TestAttachUEs_AllAttach(t *testing.T) {
	t.Parallel()

	tn := newTestNetwork(3)
	attached, err := testOrchestrator().AttachUEs(context.Background(), tn.network())
	if err != nil {
		t.Fatalf("AttachUEs() error = %v", err)
	}

	if len(attached) != 3 {
		t.Fatalf("len(attached) = %d, want 3", len(attached))
	}
	for i, a := range attached {
		if a.Name != ueName(i) {
			t.Errorf("attached[%d].Name = %q, want %q", i, a.Name, ueName(i))
		}
		if want := tn.ues[i].def.Subscriber.IMSI; a.Subscriber.IMSI != want {
			t.Errorf("attached[%d].Subscriber.IMSI = %q, want %q", i, a.Subscriber.IMSI, want)
		}
		info, ok := attached.Lookup(tn.ues[i])
		if !ok || info.Address != tn.ues[i].attach.Address {
			t.Errorf("Lookup(ue%d) = %+v, %t", i+1, info, ok)
		}
	}
	if got := tn.ues[0].startParams; got.BaseStation.ID != "gnb" || got.Core.ID != "core" {
		t.Errorf("UE start params = %+v, want gnb and core definitions", got)
	}

	starts := callsWithSuffix(tn.log.list(), ".Start")
	if want := []string{"ue1.Start", "ue2.Start", "ue3.Start"}; !slices.Equal(starts, want) {
		t.Errorf("UE starts = %v, want %v", starts, want)
	}
}

func TestAttachUEs_PartialFailure(t *testing.T) {
	t.Parallel()

	tn := newTestNetwork(3)
	tn.ues[1].attachErr = errors.New("registration rejected")

	attached, err := testOrchestrator().AttachUEs(context.Background(), tn.network())
	if err != nil {
		t.Fatalf("AttachUEs() error = %v", err)
	}
	if len(attached) != 2 {
		t.Fatalf("len(attached) = %d, want 2", len(attached))
	}
	if _, ok := attached.Lookup(tn.ues[1]); ok {
		t.Error("failed UE must not be in the attach map")
	}
	if attached[1].Name != "UE_3" {
		t.Errorf("attached[1].Name = %q, want UE_3", attached[1].Name)
	}
}

func TestAttachUEs_TimeoutExcludesOnlySlowUE(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.AttachTimeout = 50 * time.Millisecond
	cfg.CallGrace = 10 * time.Millisecond

	tn := newTestNetwork(2)
	tn.ues[0].attachBlock = true

	attached, err := NewOrchestrator(cfg, nil).AttachUEs(context.Background(), tn.network())
	if err != nil {
		t.Fatalf("AttachUEs() error = %v", err)
	}
	if len(attached) != 1 || attached[0].Name != "UE_2" {
		t.Errorf("attached = %+v, want only UE_2", attached)
	}
}

func TestAttachUEs_NoneAttached(t *testing.T) {
	t.Parallel()

	tn := newTestNetwork(2)
	for _, ue := range tn.ues {
		ue.attachErr = errors.New("no cell found")
	}

	attached, err := testOrchestrator().AttachUEs(context.Background(), tn.network())
	if !errors.Is(err, ErrAttachTimeout) {
		t.Fatalf("error = %v, want ErrAttachTimeout", err)
	}
	if attached != nil {
		t.Errorf("attached = %+v, want nil", attached)
	}
}

func TestAttachUEs_StartRefusal(t *testing.T) {
	t.Parallel()

	tn := newTestNetwork(2)
	tn.ues[0].startErr = fmt.Errorf("%w: sdr missing", entity.ErrAborted)

	_, err := testOrchestrator().AttachUEs(context.Background(), tn.network())
	if !errors.Is(err, ErrStartFailure) {
		t.Fatalf("error = %v, want ErrStartFailure", err)
	}
	if !strings.Contains(err.Error(), "UE_1") {
		t.Errorf("error = %q, want it to name UE_1", err)
	}
	if slices.Contains(tn.log.list(), "ue2.Start") {
		t.Error("UE_2 must not start after UE_1 refused")
	}
}

func TestAttachUEs_WaitsConcurrently(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		maxParallel int
		wantPeak    int32
	}{
		"unlimited": {maxParallel: 0, wantPeak: 4},
		"limited":   {maxParallel: 2, wantPeak: 2},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			cfg.MaxParallel = tc.maxParallel

			gauge := &concurrency{}
			tn := newTestNetwork(4)
			for _, ue := range tn.ues {
				ue.attachDelay = 100 * time.Millisecond
				ue.attachGauge = gauge
			}

			if _, err := NewOrchestrator(cfg, nil).AttachUEs(context.Background(), tn.network()); err != nil {
				t.Fatalf("AttachUEs() error = %v", err)
			}
			if got := gauge.peak.Load(); got != tc.wantPeak {
				t.Errorf("peak concurrent attach waits = %d, want %d", got, tc.wantPeak)
			}
		})
	}
}

func TestStartAndAttach(t *testing.T) {
	t.Parallel()

	tn := newTestNetwork(2)
	attached, err := testOrchestrator().StartAndAttach(context.Background(), tn.network(), StartOptions{})
	if err != nil {
		t.Fatalf("StartAndAttach() error = %v", err)
	}
	if len(attached) != 2 {
		t.Errorf("len(attached) = %d, want 2", len(attached))
	}
	if got := len(tn.core.subscribers); got != 2 {
		t.Errorf("subscribers = %d, want 2", got)
	}

	calls := tn.log.list()
	coreStart := slices.Index(calls, "core.Start")
	gnbStart := slices.Index(calls, "gnb.Start")
	if coreStart < 0 || gnbStart < 0 {
		t.Fatalf("calls = %v, want core.Start and gnb.Start", calls)
	}
	if gnbStart < coreStart {
		t.Errorf("gnb.Start at %d precedes core.Start at %d", gnbStart, coreStart)
	}
	for i, c := range calls {
		switch {
		case strings.HasPrefix(c, "core.AddSubscriber") && i > coreStart:
			t.Errorf("%s at %d follows core.Start at %d", c, i, coreStart)
		case strings.HasPrefix(c, "ue") && strings.HasSuffix(c, ".Start") && i < gnbStart:
			t.Errorf("%s at %d precedes gnb.Start at %d", c, i, gnbStart)
		}
	}
	if got := callsWithSuffix(calls, ".Start"); !slices.Equal(got, []string{"core.Start", "gnb.Start", "ue1.Start", "ue2.Start"}) {
		t.Errorf("starts = %v, want core, gnb, then UEs in order", got)
	}
}
