package ranenv

import (
	"context"

	"github.com/giantswarm/ranenv/internal/artifact"
	"github.com/giantswarm/ranenv/internal/core"
	"github.com/giantswarm/ranenv/internal/fileutil"
)

// Artifact sinks.
type (
	// ArtifactFlag keeps artifact capture requests in memory.
	ArtifactFlag = artifact.Flag
	// ArtifactLedger also persists requests to a SQLite database.
	ArtifactLedger = artifact.Ledger
	// ArtifactRequest is one recorded request.
	ArtifactRequest = artifact.Request
)

var (
	_ ArtifactSink = (*ArtifactFlag)(nil)
	_ ArtifactSink = (*ArtifactLedger)(nil)
)

// NewArtifactFlag returns an empty in-memory sink.
func NewArtifactFlag() *ArtifactFlag {
	return &artifact.Flag{}
}

// OpenArtifactLedger opens or creates the artifact ledger in dir and starts
// a new run. Several processes may share dir. An empty dir selects
// DefaultArtifactDirName under the system temp directory.
func OpenArtifactLedger(ctx context.Context, dir string) (*ArtifactLedger, error) {
	return artifact.OpenLedger(ctx, fileutil.DataDir(dir, DefaultArtifactDirName), core.Logger())
}
