package lockfile

import (
	"errors"
	"os"

	"github.com/gofrs/flock"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

// ErrAlreadyLocked is returned by TryLock when another process holds the lock
var ErrAlreadyLocked = errors.New("already locked")

// Lock is an advisory, process-exclusive lock backed by a lock file next to the resource it guards.
// The lock file is removed again on Release.
type Lock struct {
	path  string
	flock *flock.Flock
}

// New prepares a lock for the given lock file path, it does not acquire it
func New(path string) *Lock {
	return &Lock{path: path, flock: flock.New(path)}
}

// For returns the lock guarding the given resource path, using "<resource>.lock" as the lock file
func For(resource string) *Lock {
	return New(resource + ".lock")
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.path
}

// TryLock acquires the lock without waiting
func (l *Lock) TryLock() error {
	locked, err := l.flock.TryLock()
	if err != nil {
		return errs.Wrap(err, "Could not acquire lock %s", l.path)
	}
	if !locked {
		return errs.WrapUserFacing(
			ErrAlreadyLocked,
			"Another process is holding "+l.path,
			errs.SetTips("Wait for the other run to finish, or remove the lock file if no run is in progress"),
		)
	}
	logging.Debug("Acquired lock %s", l.path)
	return nil
}

// Release unlocks and removes the lock file
func (l *Lock) Release() error {
	if !l.flock.Locked() {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return errs.Wrap(err, "Could not release lock %s", l.path)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		logging.Warning("Could not remove lock file %s: %v", l.path, err)
	}
	return nil
}
