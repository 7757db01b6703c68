// Package task provides asynchronous task handles for fanning remote calls
// out across entities.
//
// Future runs one call in its own goroutine under its own deadline. All
// launches one task per input, waits for every task and returns the results
// in input order; a failing task never cancels its siblings.
package task
