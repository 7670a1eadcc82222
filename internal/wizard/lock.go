package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	apperrors "github.com/bjyadmin/installer/internal/errors"
)

// LockFile is the file whose presence marks the install as complete.
const LockFile = "install.lock"

// Lock records a finished install in the installer directory.
// Writers serialize on a sibling flock so concurrent requests
// finishing the wizard cannot race.
type Lock struct {
	dir   string
	guard *flock.Flock
}

// NewLock returns the install lock kept in dir.
func NewLock(dir string) *Lock {
	return &Lock{
		dir:   dir,
		guard: flock.New(filepath.Join(dir, LockFile+".guard")),
	}
}

// Path returns the install lock path.
func (l *Lock) Path() string {
	return filepath.Join(l.dir, LockFile)
}

// Installed reports whether the install lock exists.
func (l *Lock) Installed() bool {
	_, err := os.Stat(l.Path())
	return err == nil
}

// InstalledAt returns when the install was completed.
// Returns the zero time if it was not, or the lock is unreadable.
func (l *Lock) InstalledAt() time.Time {
	content, err := os.ReadFile(l.Path())
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, string(content))
	if err != nil {
		return time.Time{}
	}
	return t
}

// MarkInstalled writes the install lock.
// It fails with ErrCodeAlreadyInstalled when the lock already exists.
func (l *Lock) MarkInstalled() error {
	if err := l.guard.Lock(); err != nil {
		return apperrors.New(apperrors.ErrCodeLockFailed, "failed to acquire install guard", err)
	}
	defer func() { _ = l.guard.Unlock() }()

	if l.Installed() {
		return apperrors.ValidationError(apperrors.ErrCodeAlreadyInstalled, "already installed").
			WithDetail("lock", l.Path())
	}

	content := []byte(time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(l.Path(), content, 0o644); err != nil {
		return apperrors.New(apperrors.ErrCodeLockFailed, "failed to write install lock", err)
	}
	return nil
}

// Clear removes the install lock so the wizard can run again.
func (l *Lock) Clear() error {
	err := os.Remove(l.Path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove install lock: %w", err)
	}
	return nil
}
