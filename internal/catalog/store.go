package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"apollo/internal/faults"
	"apollo/internal/logging"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// LockPath returns the advisory lock file guarding the database at path.
func LockPath(path string) string {
	return path + ".lock"
}

// ErrLocked is returned by Open when another process holds the catalog lock.
var ErrLocked = errors.New("catalog is locked by another process")

// Store manages catalog persistence backed by SQLite.
type Store struct {
	queries
	db       *sql.DB
	path     string
	lockPath string
	lock     *flock.Flock
}

// Open initializes or connects to the catalog database at path. The parent
// directory is created when missing.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	ctx = ensureContext(ctx)
	logger = logging.NewComponentLogger(logger, "catalog")

	if strings.TrimSpace(path) == "" {
		return nil, storageError("open", "database path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, storageError("open", "create database directory", err)
	}

	lockPath := LockPath(path)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, storageError("open", "acquire lock", err)
	}
	if !ok {
		return nil, storageError("open", lockPath, ErrLocked)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, storageError("open", "open sqlite db", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, storageError("open", fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, storageError("open", "initialize schema", err)
	}

	logger.Debug("catalog opened", logging.String(logging.FieldPath, path))
	return &Store{
		queries:  queries{db: db, logger: logger},
		db:       db,
		path:     path,
		lockPath: lockPath,
		lock:     lock,
	}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection and releases the lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
		_ = os.Remove(s.lockPath)
	}
	s.db = nil
	if err != nil {
		return storageError("close", "", err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func storageError(operation, message string, err error) error {
	return faults.Wrap(faults.ErrStorage, "catalog", operation, message, err)
}
