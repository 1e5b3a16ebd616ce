package sdk

import (
	"errors"
	"fmt"

	"github.com/charcheck/sdk/engine"
	"github.com/charcheck/sdk/rule"
)

// Sentinel errors for common SDK error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrRunInProgress indicates a validation run is already active on the
	// validator. Runs are serialized; wait for the active run to finish.
	ErrRunInProgress = engine.ErrRunInProgress

	// ErrDuplicateRule indicates a rule identifier was registered twice.
	ErrDuplicateRule = rule.ErrDuplicateRule

	// ErrCyclicDependency indicates a rule registration would close a
	// dependency cycle.
	ErrCyclicDependency = rule.ErrCyclicDependency

	// ErrRuleNotFound indicates a rule identifier was referenced but never
	// registered.
	ErrRuleNotFound = rule.ErrRuleNotFound

	// ErrInvalidConfig indicates the provided configuration is invalid or
	// incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoAdapter indicates the validator was built without a scene
	// adapter.
	ErrNoAdapter = errors.New("no scene adapter configured")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindCapture represents errors raised while capturing a scene
	// snapshot.
	KindCapture = "capture"

	// KindEvaluation represents errors that occur while evaluating rules.
	KindEvaluation = "evaluation"

	// KindInternal represents internal SDK errors.
	KindInternal = "internal"
)

// SDKError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// SDKError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type SDKError struct {
	// Op is the operation that failed (e.g., "Validator.Validate").
	Op string

	// Kind categorizes the error (e.g., KindCapture, KindConfiguration).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include rule identifiers, node paths, or other debugging
	// information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *SDKError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sdk: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("sdk: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("sdk: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *SDKError) Unwrap() error {
	return e.Err
}

// Is implements error matching for SDKError, allowing comparison based on
// the underlying error or the SDKError itself.
func (e *SDKError) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*SDKError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a new SDKError with the provided context added.
// This is useful for adding debugging information to errors.
func (e *SDKError) WithContext(ctx map[string]any) *SDKError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewValidationError creates a new SDKError with KindValidation.
func NewValidationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewConfigurationError creates a new SDKError with KindConfiguration.
func NewConfigurationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewCaptureError creates a new SDKError with KindCapture.
func NewCaptureError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindCapture,
		Err:  err,
	}
}

// NewEvaluationError creates a new SDKError with KindEvaluation.
func NewEvaluationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindEvaluation,
		Err:  err,
	}
}

// NewInternalError creates a new SDKError with KindInternal.
func NewInternalError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}
