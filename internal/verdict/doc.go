// Package verdict merges per-entity failure messages into a single report.
//
// It performs no I/O. A Report keeps every message in the order it was
// given; the first one is the primary message.
package verdict
