package readiness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bjyadmin/installer/internal/config"
)

// Status represents the result of a readiness check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusFail indicates the check failed.
	StatusFail
	// StatusMissing indicates a checked directory does not exist.
	// It blocks the gate exactly like StatusFail.
	StatusMissing
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Kind identifies which predicate produced a check.
type Kind int

const (
	// KindOS is the informational operating system row.
	KindOS Kind = iota
	// KindVersion is the interpreter version row.
	KindVersion
	// KindDirectory is a directory writability row.
	KindDirectory
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindOS:
		return "os"
	case KindVersion:
		return "version"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// EnvironmentCheck holds the result of a single readiness predicate.
type EnvironmentCheck struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	Requirement string `json:"requirement"`
	Actual      string `json:"actual"`
	Status      Status `json:"status"`
	Path        string `json:"path,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Passed reports whether the check passed.
func (c EnvironmentCheck) Passed() bool {
	return c.Status == StatusPass
}

// Report is the ordered outcome of one readiness run.
type Report struct {
	Checks []EnvironmentCheck `json:"checks"`
}

// AllPassed is the gate condition: true iff every check passed.
// An empty report passes.
func (r Report) AllPassed() bool {
	for _, c := range r.Checks {
		if !c.Passed() {
			return false
		}
	}
	return true
}

// PassCount returns the number of passing checks.
func (r Report) PassCount() int {
	n := 0
	for _, c := range r.Checks {
		if c.Passed() {
			n++
		}
	}
	return n
}

// Total returns the number of checks.
func (r Report) Total() int {
	return len(r.Checks)
}

// Failures returns the checks that did not pass, in order.
func (r Report) Failures() []EnvironmentCheck {
	var out []EnvironmentCheck
	for _, c := range r.Checks {
		if !c.Passed() {
			out = append(out, c)
		}
	}
	return out
}

// Section returns the checks of the given kinds, in order.
func (r Report) Section(kinds ...Kind) []EnvironmentCheck {
	var out []EnvironmentCheck
	for _, c := range r.Checks {
		for _, k := range kinds {
			if c.Kind == k {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Summary returns "ready" when the gate is open and "blocked" otherwise.
func (r Report) Summary() string {
	if r.AllPassed() {
		return "ready"
	}
	return "blocked"
}

// Checker performs readiness checks against a fixed set of paths.
type Checker struct {
	paths   config.PathsConfig
	prober  Prober
	source  VersionSource
	minimum Version
	osName  string
	logger  *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithProber replaces the filesystem writability prober.
func WithProber(p Prober) Option {
	return func(c *Checker) {
		c.prober = p
	}
}

// WithVersionSource sets where the interpreter version comes from.
func WithVersionSource(src VersionSource) Option {
	return func(c *Checker) {
		c.source = src
	}
}

// WithMinimum sets the lowest accepted interpreter version.
func WithMinimum(v Version) Option {
	return func(c *Checker) {
		c.minimum = v
	}
}

// WithOSName overrides the reported operating system name.
func WithOSName(name string) Option {
	return func(c *Checker) {
		c.osName = name
	}
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

// DefaultMinimum is the lowest interpreter version the admin panel supports.
var DefaultMinimum = Version{Major: 5, Minor: 3, Raw: "5.3"}

// New creates a Checker for paths with the given options.
func New(paths config.PathsConfig, opts ...Option) *Checker {
	c := &Checker{
		paths:   paths,
		prober:  AccessProber{},
		source:  StaticVersion(""),
		minimum: DefaultMinimum,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.osName == "" {
		c.osName = hostOS()
	}
	return c
}

// Run evaluates every predicate and returns the ordered report:
// operating system, interpreter version, then each directory.
func (c *Checker) Run(ctx context.Context) Report {
	dirs := c.paths.Directories()
	checks := make([]EnvironmentCheck, 0, 2+len(dirs))

	checks = append(checks, c.CheckOS())
	checks = append(checks, c.checkVersionFromSource(ctx))
	for _, d := range dirs {
		checks = append(checks, c.CheckDirectory(d))
	}

	report := Report{Checks: checks}
	c.logger.Debug("readiness evaluated",
		slog.Int("passed", report.PassCount()),
		slog.Int("total", report.Total()),
		slog.Bool("all_passed", report.AllPassed()))
	return report
}

// CheckOS reports the host operating system. It never fails.
func (c *Checker) CheckOS() EnvironmentCheck {
	return EnvironmentCheck{
		Name:        "os",
		Kind:        KindOS,
		Requirement: "any",
		Actual:      c.osName,
		Status:      StatusPass,
	}
}

// checkVersionFromSource asks the source for the interpreter version.
// A failing or panicking source fails the version row only.
func (c *Checker) checkVersionFromSource(ctx context.Context) (result EnvironmentCheck) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("version source panicked", slog.Any("panic", r))
			result = EnvironmentCheck{
				Name:        "version",
				Kind:        KindVersion,
				Requirement: c.versionRequirement(),
				Actual:      "unknown",
				Status:      StatusFail,
				Detail:      fmt.Sprintf("version source failed: %v", r),
			}
		}
	}()

	raw, err := c.source.Version(ctx)
	if err != nil {
		c.logger.Warn("interpreter version unavailable", slog.String("error", err.Error()))
		return EnvironmentCheck{
			Name:        "version",
			Kind:        KindVersion,
			Requirement: c.versionRequirement(),
			Actual:      "unknown",
			Status:      StatusFail,
			Detail:      err.Error(),
		}
	}
	return c.CheckVersion(raw)
}

func (c *Checker) versionRequirement() string {
	return fmt.Sprintf(">=%d.%d", c.minimum.Major, c.minimum.Minor)
}
