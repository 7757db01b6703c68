// Package entity defines the data model exchanged with remote simulated
// network elements and the capability interfaces of their handles.
//
// A handle is a client reference to one remote UE, base-station or
// core-network. Handles are owned by the caller; the orchestrator only
// borrows them for the duration of a call. Every method blocks until the
// remote call completes or ctx is done; asynchronous use is the caller's
// choice (see internal/task).
package entity
