// Package core implements the lifecycle orchestrator behind the ranenv
// public API: network start and UE attach, the ping and throughput
// exercisers, the teardown coordinator and the Run session that ties them
// together.
//
// Every remote call is bounded twice: the entity receives its own timeout
// and the local call carries a deadline of that timeout plus a grace period,
// so a stalled transport can never hang the orchestrator. Per-UE work fans
// out through internal/task and is joined independently; a failing UE is
// excluded or reported, never allowed to abort its siblings.
package core
