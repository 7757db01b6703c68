// Package fileutil provides the directory helpers used to prepare the
// artifact ledger's data directory.
package fileutil
