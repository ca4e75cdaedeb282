// Package errors provides the structured error type used across the
// evaluation engine, exoskeleton materializer, and pipeline generator.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Code identifies a specific well-known failure.
type Code string

const (
	CodeUnknownCriterion    Code = "UNKNOWN_CRITERION"
	CodeWeightsInvalid      Code = "WEIGHTS_INVALID"
	CodeUnsupportedProvider Code = "UNSUPPORTED_PROVIDER"
	CodeUnsupportedFeature  Code = "UNSUPPORTED_FEATURE"
	CodeUnknownTemplate     Code = "UNKNOWN_TEMPLATE"
	CodeMaterializeConflict Code = "MATERIALIZE_CONFLICT"
	CodeValidatorFailed     Code = "VALIDATOR_FAILED"
	CodeValidatorTimeout    Code = "VALIDATOR_TIMEOUT"
	CodeRunCancelled        Code = "RUN_CANCELLED"
	CodeConfigInvalid       Code = "CONFIG_INVALID"
	CodeConfigMissing       Code = "CONFIG_MISSING"
	CodeLockHeld            Code = "LOCK_HELD"
)

// Category groups error codes by the taxonomy in the error handling design:
// input_error, validator_error, timeout, cancelled, io_error, internal_error.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryBadRequest
	CategoryConflict
	CategoryInternal
	CategoryTimeout
	CategoryUnavailable
)

// codeCategories maps error codes to their categories.
var codeCategories = map[Code]Category{
	CodeUnknownCriterion:    CategoryBadRequest,
	CodeWeightsInvalid:      CategoryInternal,
	CodeUnsupportedProvider: CategoryBadRequest,
	CodeUnsupportedFeature:  CategoryBadRequest,
	CodeUnknownTemplate:     CategoryBadRequest,
	CodeMaterializeConflict: CategoryConflict,
	CodeValidatorFailed:     CategoryInternal,
	CodeValidatorTimeout:    CategoryTimeout,
	CodeRunCancelled:        CategoryUnavailable,
	CodeConfigInvalid:       CategoryBadRequest,
	CodeConfigMissing:       CategoryBadRequest,
	CodeLockHeld:            CategoryConflict,
	Code("UNKNOWN"):         CategoryInternal,
}

// HTTPStatus returns the closest HTTP status for a category. The CLI does
// not use it; it is not an actual HTTP server concern.
func (c Category) HTTPStatus() int {
	switch c {
	case CategoryBadRequest:
		return 400
	case CategoryConflict:
		return 409
	case CategoryTimeout:
		return 504
	case CategoryUnavailable:
		return 503
	default:
		return 500
	}
}

// ExitCode maps a category to the process exit code the CLI should return.
// internal_error (invariant violations) gets a distinct code so callers can
// tell "the run failed" apart from "the tool is broken."
func (c Category) ExitCode() int {
	switch c {
	case CategoryInternal:
		return 2
	case CategoryUnknown:
		return 0
	default:
		return 1
	}
}

// DoDError is the structured error type returned by core operations.
type DoDError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Fix   string `json:"fix,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *DoDError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *DoDError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *DoDError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// Category returns the error category used for exit-code mapping.
func (e *DoDError) Category() Category {
	if cat, ok := codeCategories[e.Code]; ok {
		return cat
	}
	return CategoryUnknown
}

// HTTPStatus returns the status code for this error's category.
func (e *DoDError) HTTPStatus() int {
	return e.Category().HTTPStatus()
}

// ExitCode returns the process exit code for this error's category, with
// one override: an unrecognized criterion id is a pre-validation error and
// always exits 2, distinct from the other bad_request codes (exit 1) per
// the CLI contract.
func (e *DoDError) ExitCode() int {
	if e.Code == CodeUnknownCriterion {
		return 2
	}
	return e.Category().ExitCode()
}

// MarshalJSON implements json.Marshaler.
func (e *DoDError) MarshalJSON() ([]byte, error) {
	type alias DoDError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Is reports whether target is a DoDError with the same code.
func (e *DoDError) Is(target error) bool {
	t, ok := target.(*DoDError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *DoDError) WithCause(err error) *DoDError {
	return &DoDError{
		Code:  e.Code,
		What:  e.What,
		Why:   e.Why,
		Fix:   e.Fix,
		Cause: err,
	}
}

// --- Error constructors ---

// ErrUnknownCriterion returns an input_error for a criterion id not in the registry.
func ErrUnknownCriterion(id string) *DoDError {
	return &DoDError{
		Code: CodeUnknownCriterion,
		What: fmt.Sprintf("unknown criterion %q", id),
		Why:  "This criterion id is not in the registry",
		Fix:  "Use one of testing, security, devops, code_quality, documentation, performance, compliance, or drop it from your selection",
	}
}

// ErrWeightsInvalid returns an internal_error when the registry's weights
// violate invariant W1 (must sum to 1.0 within 1e-9).
func ErrWeightsInvalid(sum float64) *DoDError {
	return &DoDError{
		Code: CodeWeightsInvalid,
		What: fmt.Sprintf("criterion weights sum to %g, expected 1.0", sum),
		Why:  "The registry's weights must sum to 1.0 within 1e-9",
		Fix:  "Fix the weight configuration for the registered criteria",
	}
}

// ErrUnsupportedProvider returns an input_error for a pipeline provider
// outside the closed set {github, gitlab, azure}.
func ErrUnsupportedProvider(provider string) *DoDError {
	return &DoDError{
		Code: CodeUnsupportedProvider,
		What: fmt.Sprintf("unsupported pipeline provider %q", provider),
		Why:  "Only github, gitlab, and azure are supported",
		Fix:  "Pass one of: github, gitlab, azure",
	}
}

// ErrUnsupportedFeature returns an input_error for a pipeline feature outside
// the known feature set.
func ErrUnsupportedFeature(feature string) *DoDError {
	return &DoDError{
		Code: CodeUnsupportedFeature,
		What: fmt.Sprintf("unsupported pipeline feature %q", feature),
		Why:  "This feature is not in the known feature set",
		Fix:  "Check the supported features and remove the unrecognized one",
	}
}

// ErrUnknownTemplate returns an input_error for an exoskeleton template id
// outside {standard, enterprise, ai-native}.
func ErrUnknownTemplate(id string) *DoDError {
	return &DoDError{
		Code: CodeUnknownTemplate,
		What: fmt.Sprintf("unknown exoskeleton template %q", id),
		Why:  "Only standard, enterprise, and ai-native templates are defined",
		Fix:  "Pass one of: standard, enterprise, ai-native",
	}
}

// ErrMaterializeConflict returns a conflict error when mode=create finds existing
// files with content differing from the template.
func ErrMaterializeConflict(paths []string) *DoDError {
	return &DoDError{
		Code: CodeMaterializeConflict,
		What: fmt.Sprintf("%d file(s) already exist with different content", len(paths)),
		Why:  strings.Join(paths, ", "),
		Fix:  "Use mode=force to overwrite, or remove the conflicting files manually",
	}
}

// ErrValidatorFailed returns a validator_error when a validator raises or
// exits abnormally. Not fatal to the overall evaluation.
func ErrValidatorFailed(criterionID string, cause error) *DoDError {
	return &DoDError{
		Code:  CodeValidatorFailed,
		What:  fmt.Sprintf("validator for %s failed", criterionID),
		Cause: cause,
	}
}

// ErrValidatorTimeout returns a timeout error when a validator exceeds its
// per-criterion deadline.
func ErrValidatorTimeout(criterionID string, deadline string) *DoDError {
	return &DoDError{
		Code: CodeValidatorTimeout,
		What: fmt.Sprintf("validator for %s exceeded its deadline", criterionID),
		Why:  fmt.Sprintf("No result after %s", deadline),
	}
}

// ErrRunCancelled returns a cancelled error for criteria that never started
// or were interrupted by the global deadline or user cancellation.
func ErrRunCancelled(criterionID string) *DoDError {
	return &DoDError{
		Code: CodeRunCancelled,
		What: fmt.Sprintf("criterion %s was cancelled", criterionID),
		Why:  "The run was cancelled or the global deadline was exceeded",
	}
}

// ErrConfigInvalid returns an input_error for invalid configuration.
func ErrConfigInvalid(field, reason string) *DoDError {
	return &DoDError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
		Fix:  "Check .uvmgr/exoskeleton/config.yaml and fix the invalid field",
	}
}

// ErrConfigMissing returns an input_error for missing required configuration.
func ErrConfigMissing(field string) *DoDError {
	return &DoDError{
		Code: CodeConfigMissing,
		What: fmt.Sprintf("missing required configuration: %s", field),
		Why:  "This field is required but not set",
		Fix:  fmt.Sprintf("Add %q to .uvmgr/exoskeleton/config.yaml", field),
	}
}

// ErrLockHeld returns a conflict error when the exoskeleton advisory lock is
// held by another process.
func ErrLockHeld(pid int) *DoDError {
	return &DoDError{
		Code: CodeLockHeld,
		What: fmt.Sprintf("exoskeleton lock is held by process %d", pid),
		Why:  "Another materialize or pipeline_generate run is in progress",
		Fix:  "Wait for the other run to finish, or remove .uvmgr/.lock if it is stale",
	}
}

// AsDoDError attempts to convert an error to a DoDError.
// Returns nil if the error is not a DoDError.
func AsDoDError(err error) *DoDError {
	var dodErr *DoDError
	if As(err, &dodErr) {
		return dodErr
	}
	return nil
}

// As is a convenience wrapper mirroring errors.As for DoDError targets.
func As(err error, target any) bool {
	return asError(err, target)
}

func asError(err error, target any) bool {
	if err == nil {
		return false
	}
	if dodErr, ok := err.(*DoDError); ok {
		if t, ok := target.(**DoDError); ok {
			*t = dodErr
			return true
		}
	}
	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		return asError(unwrapper.Unwrap(), target)
	}
	return false
}

// Wrap wraps a generic error into a DoDError with an internal_error code.
func Wrap(err error, what string) *DoDError {
	return &DoDError{
		Code:  Code("UNKNOWN"),
		What:  what,
		Cause: err,
	}
}
