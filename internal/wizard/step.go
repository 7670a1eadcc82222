// Package wizard implements the installer's linear step sequence and the
// readiness gate between the environment check and data creation.
package wizard

import (
	"fmt"

	apperrors "github.com/bjyadmin/installer/internal/errors"
	"github.com/bjyadmin/installer/internal/readiness"
)

// Step is one page of the install wizard.
type Step int

const (
	// StepAgreement shows the license agreement.
	StepAgreement Step = iota
	// StepEnvironment runs the readiness checks.
	StepEnvironment
	// StepCreateData collects database settings.
	StepCreateData
	// StepDone confirms the install.
	StepDone
)

// Steps lists every step in wizard order.
var Steps = []Step{StepAgreement, StepEnvironment, StepCreateData, StepDone}

// Query returns the ?c= value that selects the step.
func (s Step) Query() string {
	switch s {
	case StepAgreement:
		return "agreement"
	case StepEnvironment:
		return "test"
	case StepCreateData:
		return "create"
	case StepDone:
		return "done"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (s Step) String() string {
	return s.Query()
}

// Number is the 1-based position shown in the progress bar.
func (s Step) Number() int {
	return int(s) + 1
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	return s >= StepAgreement && s <= StepDone
}

// ParseStep maps a ?c= value to a Step. An empty value selects the
// agreement page.
func ParseStep(q string) (Step, error) {
	if q == "" {
		return StepAgreement, nil
	}
	for _, s := range Steps {
		if s.Query() == q {
			return s, nil
		}
	}
	return 0, apperrors.ValidationError(apperrors.ErrCodeUnknownStep, fmt.Sprintf("unknown step %q", q))
}

// Previous returns the step before s; the first step has none.
func (s Step) Previous() (Step, bool) {
	if s <= StepAgreement || !s.Valid() {
		return s, false
	}
	return s - 1, true
}

// Next returns the step after s without gating; the last step has none.
func (s Step) Next() (Step, bool) {
	if s >= StepDone || !s.Valid() {
		return s, false
	}
	return s + 1, true
}

// Gated reports whether reaching s requires a passing readiness report.
// Every step after the environment check is gated.
func (s Step) Gated() bool {
	return s > StepEnvironment && s.Valid()
}

// Advance moves forward from s. Entering a gated step requires
// report.AllPassed; otherwise a gate-blocked error is returned and the
// wizard stays on s.
func Advance(s Step, report readiness.Report) (Step, error) {
	next, ok := s.Next()
	if !ok {
		return s, apperrors.ValidationError(apperrors.ErrCodeUnknownStep,
			fmt.Sprintf("no step after %q", s.Query()))
	}

	if next.Gated() && !report.AllPassed() {
		err := apperrors.ValidationError(apperrors.ErrCodeGateBlocked, "environment check failed").
			WithSuggestion("run 'installer check --verbose' for details")
		for _, f := range report.Failures() {
			err.WithDetail(f.Name, f.Status.String())
		}
		return s, err
	}

	return next, nil
}
