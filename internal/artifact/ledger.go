package artifact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giantswarm/ranenv/internal/fileutil"

	// Register the pure-Go SQLite driver (no CGO required).
	_ "modernc.org/sqlite"
)

const (
	ledgerFile = "artifacts.db"
	lockFile   = "artifacts.lock"

	// writeTimeout bounds one RequestArtifacts write, lock wait included.
	writeTimeout = 30 * time.Second
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS artifact_requests (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id       TEXT NOT NULL,
		entity       TEXT NOT NULL,
		reason       TEXT NOT NULL,
		requested_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS artifact_requests_run ON artifact_requests (run_id)`,
}

// Ledger is a Flag that also persists every request under a run id. The
// embedded Flag holds this run's requests in memory; Requests reads any
// run back from the database.
//
// RequestArtifacts cannot return an error, so write failures are logged
// and kept for Err. The in-memory flag is raised regardless.
type Ledger struct {
	Flag

	runID    string
	dbPath   string
	lockPath string
	log      *slog.Logger

	mu   sync.Mutex
	errs []error
}

// OpenLedger prepares the ledger database in dir, creating both if needed,
// and starts a new run with a random id. log may be nil.
func OpenLedger(ctx context.Context, dir string, log *slog.Logger) (*Ledger, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := fileutil.EnsureWritableDir(dir); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	l := &Ledger{
		runID:    runID,
		dbPath:   filepath.Join(dir, ledgerFile),
		lockPath: filepath.Join(dir, lockFile),
		log:      log.With("run_id", runID),
	}

	if err := l.withDB(ctx, func(db *sql.DB) error {
		for _, stmt := range schema {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("create ledger schema: %w", err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return l, nil
}

// RunID returns the id requests of this ledger are recorded under.
func (l *Ledger) RunID() string {
	return l.runID
}

// Path returns the ledger database path.
func (l *Ledger) Path() string {
	return l.dbPath
}

// RequestArtifacts raises the in-memory flag and appends the request to
// the database.
func (l *Ledger) RequestArtifacts(entity, reason string) {
	r := Request{Entity: entity, Reason: reason, At: time.Now().UTC()}
	l.Flag.record(r)

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := l.append(ctx, r); err != nil {
		l.log.Warn("artifact request not persisted", "entity", entity, "error", err)
		l.mu.Lock()
		l.errs = append(l.errs, err)
		l.mu.Unlock()
		return
	}
	l.log.Debug("artifact request persisted", "entity", entity)
}

// Err returns every write failure so far, joined.
func (l *Ledger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.Join(l.errs...)
}

func (l *Ledger) append(ctx context.Context, r Request) error {
	return l.withDB(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			"INSERT INTO artifact_requests (run_id, entity, reason, requested_at) VALUES (?, ?, ?, ?)",
			l.runID, r.Entity, r.Reason, r.At.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("insert artifact request: %w", err)
		}
		return nil
	})
}

// Requests reads back the requests recorded under runID in arrival order.
func (l *Ledger) Requests(ctx context.Context, runID string) ([]Request, error) {
	var out []Request
	err := l.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			"SELECT entity, reason, requested_at FROM artifact_requests WHERE run_id = ? ORDER BY id", runID)
		if err != nil {
			return fmt.Errorf("query artifact requests: %w", err)
		}
		defer rows.Close() //nolint:errcheck // rows.Err() below catches read errors

		for rows.Next() {
			var r Request
			var at string
			if err := rows.Scan(&r.Entity, &r.Reason, &at); err != nil {
				return fmt.Errorf("scan artifact request: %w", err)
			}
			if r.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
				return fmt.Errorf("parse request time %q: %w", at, err)
			}
			out = append(out, r)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate artifact requests: %w", err)
		}
		return nil
	})
	return out, err
}

// Runs returns the distinct run ids that raised at least one request,
// oldest first.
func (l *Ledger) Runs(ctx context.Context) ([]string, error) {
	var out []string
	err := l.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			"SELECT run_id FROM artifact_requests GROUP BY run_id ORDER BY MIN(id)")
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}
		defer rows.Close() //nolint:errcheck // rows.Err() below catches read errors

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("scan run id: %w", err)
			}
			out = append(out, id)
		}
		return rows.Err()
	})
	return out, err
}

// withDB runs fn on a short-lived single-connection session while holding
// the ledger lock.
func (l *Ledger) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	fl, err := lockLedger(ctx, l.log, l.lockPath)
	if err != nil {
		return err
	}
	defer unlockLedger(l.log, fl)

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=synchronous(NORMAL)",
		l.dbPath,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", l.dbPath, err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			l.log.Warn("ledger: close sqlite", "error", closeErr)
		}
	}()
	db.SetMaxOpenConns(1)

	return fn(db)
}
