package ranenv

import "context"

// Orchestrator drives the lifecycle of a Network. It holds no per-run
// state; one Orchestrator may drive several disjoint networks
// concurrently.
//
// The usual ordering is:
//
//	StartNetwork → AttachUEs → Ping/Throughput (repeatable) → Stop
//
// Run wraps that ordering and guarantees Stop.
type Orchestrator interface {
	// StartNetwork registers every UE subscriber with the core-network,
	// then starts the core-network and the base-station.
	//
	// Returns an error matching ErrStartFailure if an entity refused to
	// start, and ErrInvalidNetwork if a handle is missing.
	StartNetwork(ctx context.Context, net Network, opts StartOptions) error

	// AttachUEs starts the UEs one after another and waits for all of them
	// to attach concurrently. UEs that fail to attach are logged and left
	// out of the result.
	//
	// Returns ErrAttachTimeout if no UE attached.
	AttachUEs(ctx context.Context, net Network) (AttachMap, error)

	// StartAndAttach is StartNetwork followed by AttachUEs.
	StartAndAttach(ctx context.Context, net Network, opts StartOptions) (AttachMap, error)

	// Ping probes each attached UE in both directions with count packets.
	// Returns a *Report matching ErrPingFailed listing every failed probe.
	Ping(ctx context.Context, attached AttachMap, core CoreNetwork, count int) error

	// Throughput runs spec on every attached UE concurrently and checks
	// the rate measured by the core-network. Returns a *Report matching
	// ErrThroughputFailed listing every rate below the threshold.
	Throughput(ctx context.Context, attached AttachMap, core CoreNetwork, spec TrafficSpec) error

	// Stop stops the UEs, the base-station and the core-network in that
	// order and checks each outcome. sink may be nil.
	//
	// Returns a *Report matching ErrStopFailed or ErrResidualMetrics.
	Stop(ctx context.Context, net Network, sink ArtifactSink, opts StopOptions) (Teardown, error)

	// StopUEs is Stop restricted to ues.
	StopUEs(ctx context.Context, ues []UE, sink ArtifactSink, opts StopOptions) (Teardown, error)

	// Run starts and attaches net, calls body and always stops net
	// afterwards. Errors are joined.
	Run(
		ctx context.Context,
		net Network,
		startOpts StartOptions,
		sink ArtifactSink,
		stopOpts StopOptions,
		body func(ctx context.Context, attached AttachMap) error,
	) error
}
