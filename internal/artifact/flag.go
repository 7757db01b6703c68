package artifact

import (
	"sync"
	"time"
)

// Request is one artifact capture request.
type Request struct {
	Entity string
	Reason string
	At     time.Time
}

// Flag records artifact capture requests in memory. The zero value is
// ready to use and safe for concurrent use.
type Flag struct {
	mu   sync.Mutex
	reqs []Request
}

// RequestArtifacts raises the flag and records the request.
func (f *Flag) RequestArtifacts(entity, reason string) {
	f.record(Request{Entity: entity, Reason: reason, At: time.Now().UTC()})
}

func (f *Flag) record(r Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, r)
}

// Raised reports whether any request was recorded since the last Reset.
func (f *Flag) Raised() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs) > 0
}

// Requests returns a copy of the recorded requests in arrival order.
func (f *Flag) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.reqs...)
}

// Reset lowers the flag and forgets every request.
func (f *Flag) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = nil
}
