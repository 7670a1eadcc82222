// Package errors provides structured error handling for the installer.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Filesystem errors (paths, permissions, locks)
//   - 3XX: Runtime interpreter errors
//   - 4XX: Validation and gate errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryFS indicates filesystem probing and lock errors.
	CategoryFS Category = "FS"
	// CategoryRuntime indicates interpreter discovery errors.
	CategoryRuntime Category = "RUNTIME"
	// CategoryValidation indicates input validation and gating errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Filesystem errors (200-299)
	ErrCodePathMissing    = "ERR_201_PATH_MISSING"
	ErrCodePathUnwritable = "ERR_202_PATH_UNWRITABLE"
	ErrCodeProbeFailed    = "ERR_203_PROBE_FAILED"
	ErrCodeLockFailed     = "ERR_204_LOCK_FAILED"

	// Runtime errors (300-399)
	ErrCodeInterpreterNotFound = "ERR_301_INTERPRETER_NOT_FOUND"
	ErrCodeInterpreterFailed   = "ERR_302_INTERPRETER_FAILED"

	// Validation errors (400-499)
	ErrCodeVersionUnparsable = "ERR_401_VERSION_UNPARSABLE"
	ErrCodeUnknownStep       = "ERR_402_UNKNOWN_STEP"
	ErrCodeGateBlocked       = "ERR_403_GATE_BLOCKED"
	ErrCodeAlreadyInstalled  = "ERR_404_ALREADY_INSTALLED"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeRenderFailed = "ERR_502_RENDER_FAILED"
)

// CallbackCode classifies connection callback failures reported by the
// HTTP layer. The values are fixed and shared with the admin panel's
// socket worker.
type CallbackCode int

const (
	// ConnectFail is reported when a client connection could not be served.
	ConnectFail CallbackCode = 1
	// SendFail is reported when writing a response to the client failed.
	SendFail CallbackCode = 2
)

// String returns the log name of a callback code.
func (c CallbackCode) String() string {
	switch c {
	case ConnectFail:
		return "connect_fail"
	case SendFail:
		return "send_fail"
	default:
		return "unknown"
	}
}

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// "101" from "ERR_101_CONFIG_NOT_FOUND"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryFS
	case '3':
		return CategoryRuntime
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeConfigInvalid, ErrCodeInternal:
		return SeverityFatal
	case ErrCodePathMissing, ErrCodePathUnwritable, ErrCodeGateBlocked, ErrCodeAlreadyInstalled:
		return SeverityWarning
	default:
		return SeverityError
	}
}
