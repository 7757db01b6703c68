// Package artifact implements sinks for artifact capture requests raised
// during teardown.
//
// Flag keeps requests in memory. Ledger additionally appends every request
// to a SQLite database shared by all runs that use the same data
// directory, so an external collector can find which runs and entities
// need their logs and captures kept. Writers in different processes are
// serialized by an exclusive file lock next to the database.
package artifact
