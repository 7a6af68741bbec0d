package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"apollo/internal/catalog"
)

// Access describes the permissions a directory check requires.
type Access uint32

const (
	ReadAccess      Access = unix.R_OK | unix.X_OK
	ReadWriteAccess Access = unix.R_OK | unix.W_OK | unix.X_OK
)

func (a Access) String() string {
	if a&unix.W_OK != 0 {
		return "read/write"
	}
	return "read"
}

// CheckDirectoryAccess verifies that the directory exists and grants the requested access.
func CheckDirectoryAccess(name, path string, access Access) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, uint32(access)); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s ok)", path, access)}
}

// CheckDatabaseDirectory verifies that the catalog directory is writable, or
// that its nearest existing ancestor is so the directory can be created.
func CheckDatabaseDirectory(dbPath string) Result {
	const name = "Database directory"

	dir := filepath.Dir(dbPath)
	probe := dir
	for {
		if _, err := os.Stat(probe); err == nil {
			break
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing ancestor)", dir)}
		}
		probe = parent
	}

	res := CheckDirectoryAccess(name, probe, ReadWriteAccess)
	if res.Passed && probe != dir {
		res.Detail = fmt.Sprintf("%s (will be created)", dir)
	}
	return res
}

// CheckCatalogLock reports whether another process holds the catalog lock.
func CheckCatalogLock(ctx context.Context, dbPath string) Result {
	const name = "Catalog lock"

	lockPath := catalog.LockPath(dbPath)
	_, statErr := os.Stat(lockPath)
	existed := statErr == nil
	if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", lockPath, statErr)}
	}
	if !existed {
		if _, err := os.Stat(filepath.Dir(lockPath)); err != nil {
			return Result{Name: name, Passed: true, Detail: "free"}
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", lockPath, err)}
	}
	if !ok {
		return Result{Name: name, Detail: fmt.Sprintf("%s (held by another apollo process)", lockPath)}
	}
	_ = lock.Unlock()
	if !existed {
		_ = os.Remove(lockPath)
	}
	return Result{Name: name, Passed: true, Detail: "free"}
}
