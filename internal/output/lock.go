package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"movienight/internal/services"
)

// Lock is an exclusive advisory lock held for the duration of a run.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes a non-blocking lock on artifactPath + ".lock". A second
// run against the same artifact fails immediately.
func AcquireLock(artifactPath string) (*Lock, error) {
	lockPath := artifactPath + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, services.Wrap(services.ErrOutput, "output", "create lock directory", lockPath, err)
	}
	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrOutput, "output", "acquire lock", lockPath, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrOutput, "output", "acquire lock", fmt.Sprintf("another run holds %s", lockPath), nil)
	}
	return &Lock{path: lockPath, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. The lock file is left in place.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
