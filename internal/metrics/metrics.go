// Package metrics exposes Prometheus collectors for orchestration outcomes.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ranenv"

// Recorder holds the orchestration collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	attach          *prometheus.CounterVec
	pingProbes      *prometheus.CounterVec
	throughput      *prometheus.GaugeVec
	throughputCheck *prometheus.CounterVec
	stopFailures    *prometheus.CounterVec
	residual        *prometheus.CounterVec
	artifacts       prometheus.Counter
}

// New creates a Recorder and registers its collectors on reg. If reg is
// nil, a private registry is used so collectors still work but are not
// exported.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{
		attach: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ue_attach_total",
			Help:      "UE attach attempts by result.",
		}, []string{"result"}),
		pingProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ping_probes_total",
			Help:      "Ping probes by direction and result.",
		}, []string{"direction", "result"}),
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throughput_bits_per_second",
			Help:      "Last measured throughput per UE and direction.",
		}, []string{"ue", "direction"}),
		throughputCheck: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "throughput_checks_total",
			Help:      "Throughput classifications by direction and verdict.",
		}, []string{"direction", "verdict"}),
		stopFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stop_failures_total",
			Help:      "Entities that failed the stop check, by kind.",
		}, []string{"kind"}),
		residual: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "residual_metric_failures_total",
			Help:      "Entities with non-zero KO or retransmission counts, by kind.",
		}, []string{"kind"}),
		artifacts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_requests_total",
			Help:      "Artifact capture requests raised at teardown.",
		}),
	}

	var errs []error
	for _, c := range []prometheus.Collector{
		r.attach, r.pingProbes, r.throughput, r.throughputCheck, r.stopFailures, r.residual, r.artifacts,
	} {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("register collectors: %w", err)
	}
	return r, nil
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// Attach records one attach wait outcome.
func (r *Recorder) Attach(ok bool) {
	if r == nil {
		return
	}
	r.attach.WithLabelValues(result(ok)).Inc()
}

// PingProbe records one probe outcome.
func (r *Recorder) PingProbe(direction string, ok bool) {
	if r == nil {
		return
	}
	r.pingProbes.WithLabelValues(direction, result(ok)).Inc()
}

// Throughput records a measured rate and its verdict.
func (r *Recorder) Throughput(ue, direction string, bps float64, verdict string) {
	if r == nil {
		return
	}
	r.throughput.WithLabelValues(ue, direction).Set(bps)
	r.throughputCheck.WithLabelValues(direction, verdict).Inc()
}

// StopFailure records an entity that failed the stop check.
func (r *Recorder) StopFailure(kind string) {
	if r == nil {
		return
	}
	r.stopFailures.WithLabelValues(kind).Inc()
}

// ResidualFailure records an entity with residual KOs or retransmissions.
func (r *Recorder) ResidualFailure(kind string) {
	if r == nil {
		return
	}
	r.residual.WithLabelValues(kind).Inc()
}

// ArtifactRequest records an artifact capture request.
func (r *Recorder) ArtifactRequest() {
	if r == nil {
		return
	}
	r.artifacts.Inc()
}
