package readiness

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"github.com/bjyadmin/installer/internal/config"
)

// ProbeResult is the outcome of a writability probe.
type ProbeResult struct {
	Exists   bool
	Writable bool
	// Err is set when the probe itself could not complete.
	Err error
}

// Prober tests whether a path can currently be written by this process.
// Implementations must not modify the filesystem.
type Prober interface {
	Probe(path string) ProbeResult
}

// AccessProber probes with access(2) and W_OK, which checks permissions
// for the real user without creating anything.
type AccessProber struct{}

// Probe implements Prober.
func (AccessProber) Probe(path string) ProbeResult {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ProbeResult{}
		}
		return ProbeResult{Exists: true, Err: err}
	}

	err := unix.Access(path, unix.W_OK)
	switch {
	case err == nil:
		return ProbeResult{Exists: true, Writable: true}
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EROFS), errors.Is(err, unix.EPERM):
		return ProbeResult{Exists: true}
	default:
		return ProbeResult{Exists: true, Err: err}
	}
}

// CheckDirectory probes dir for writability.
// A missing path yields StatusMissing; a panicking prober fails the row.
func (c *Checker) CheckDirectory(dir config.Directory) (result EnvironmentCheck) {
	result = EnvironmentCheck{
		Name:        dir.Label,
		Kind:        KindDirectory,
		Requirement: "writable",
		Path:        dir.Path,
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("writability probe panicked",
				slog.String("path", dir.Path),
				slog.Any("panic", r))
			result.Status = StatusFail
			result.Actual = "not writable"
			result.Detail = fmt.Sprintf("probe failed: %v", r)
		}
	}()

	probe := c.prober.Probe(dir.Path)
	switch {
	case probe.Err != nil:
		c.logger.Debug("writability probe error",
			slog.String("path", dir.Path),
			slog.String("error", probe.Err.Error()))
		result.Status = StatusFail
		result.Actual = "not writable"
		result.Detail = probe.Err.Error()
	case !probe.Exists:
		result.Status = StatusMissing
		result.Actual = "missing"
		result.Detail = "path does not exist"
	case probe.Writable:
		result.Status = StatusPass
		result.Actual = "writable"
	default:
		result.Status = StatusFail
		result.Actual = "not writable"
	}
	return result
}
