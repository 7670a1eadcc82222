package readiness

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/bjyadmin/installer/internal/errors"
)

// VersionSource reports the interpreter version to check.
type VersionSource interface {
	Version(ctx context.Context) (string, error)
}

// StaticVersion is a VersionSource that always returns itself.
type StaticVersion string

// Version implements VersionSource.
func (s StaticVersion) Version(context.Context) (string, error) {
	return string(s), nil
}

// DefaultInterpreterArgs makes the PHP CLI print its version and exit.
var DefaultInterpreterArgs = []string{"-r", "echo PHP_VERSION;"}

// InterpreterVersion asks an interpreter binary for its version.
type InterpreterVersion struct {
	Binary  string
	Args    []string
	Timeout time.Duration
}

// Version runs the interpreter and returns its trimmed stdout.
func (iv InterpreterVersion) Version(ctx context.Context) (string, error) {
	path, err := exec.LookPath(iv.Binary)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeInterpreterNotFound,
			fmt.Sprintf("interpreter %q not found", iv.Binary), err).
			WithSuggestion("set runtime.binary or runtime.version in .installer.yaml")
	}

	if iv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, iv.Timeout)
		defer cancel()
	}

	args := iv.Args
	if args == nil {
		args = DefaultInterpreterArgs
	}

	out, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		msg := fmt.Sprintf("interpreter %q failed", iv.Binary)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			msg += ": " + strings.TrimSpace(string(exitErr.Stderr))
		}
		return "", apperrors.New(apperrors.ErrCodeInterpreterFailed, msg, err)
	}

	return strings.TrimSpace(string(out)), nil
}
