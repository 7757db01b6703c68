package ranenv

import "time"

// Default configuration values for NewOrchestrator.
// These constants are exported so callers can build custom values relative
// to them (e.g., 2 * DefaultAttachTimeout).
const (
	// DefaultUEStartupTimeout is passed to every UE start. It matches the
	// radio front-end cold-start budget because loading a new image into
	// an SDR dominates UE startup.
	DefaultUEStartupTimeout = 3 * time.Minute

	// DefaultBaseStationStartupTimeout is how long the base-station gets
	// to prove it stays alive after start.
	DefaultBaseStationStartupTimeout = 5 * time.Second

	// DefaultCoreStartupTimeout is passed to the core-network start.
	DefaultCoreStartupTimeout = 3 * time.Minute

	// DefaultAttachTimeout bounds each UE's wait for attach.
	DefaultAttachTimeout = 120 * time.Second

	// DefaultStopTimeout lets each entity pick its own stop timeout.
	DefaultStopTimeout time.Duration = 0

	// DefaultControlCallTimeout bounds short control calls: definitions,
	// subscriber registration, metrics and traffic listeners.
	DefaultControlCallTimeout = 30 * time.Second

	// DefaultCallGrace is added to every remote timeout to form the local
	// deadline of the call carrying it.
	DefaultCallGrace = 10 * time.Second

	// DefaultAutoStopTimeout is the local deadline of a stop call whose
	// remote timeout is zero.
	DefaultAutoStopTimeout = 5 * time.Minute

	// DefaultPingInterval is the expected spacing of probe packets.
	DefaultPingInterval = time.Second

	// DefaultMaxParallel leaves per-UE concurrency unlimited.
	DefaultMaxParallel = 0

	// DefaultArtifactDirName is the temp-dir subdirectory used by
	// OpenArtifactLedger when no directory is given.
	DefaultArtifactDirName = "ranenv"
)
