package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryInterval is how often a contended ledger lock is retried.
const lockRetryInterval = 20 * time.Millisecond

// lockLedger takes the exclusive lock that serializes ledger sessions of
// every process sharing the data directory. When another process holds
// it, the wait is logged once and retried until ctx is done.
func lockLedger(ctx context.Context, log *slog.Logger, lockPath string) (*flock.Flock, error) {
	fl := flock.New(lockPath)

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock artifact ledger %s: %w", lockPath, err)
	}
	if locked {
		return fl, nil
	}

	log.Debug("artifact ledger busy, waiting for lock", "path", lockPath)
	start := time.Now()
	locked, err = fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("lock artifact ledger %s after %s: %w", lockPath, time.Since(start).Round(time.Millisecond), err)
	}
	if !locked {
		return nil, fmt.Errorf("lock artifact ledger %s: held by another process", lockPath)
	}
	log.Debug("artifact ledger lock acquired", "path", lockPath, "waited", time.Since(start))
	return fl, nil
}

// unlockLedger releases fl. The lock file stays on disk so that removing
// it cannot invalidate a lock another process just took.
func unlockLedger(log *slog.Logger, fl *flock.Flock) {
	if err := fl.Close(); err != nil {
		log.Debug("release artifact ledger lock", "path", fl.Path(), "error", err)
	}
}
