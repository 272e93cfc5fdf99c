// Package errors provides centralized error definitions and error handling utilities
// for TeamMate. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - FormationError: an unexpected fault inside a team formation run
//   - StorageError: errors reading or writing participant and team data
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - AlreadyExistsError: resource already exists
//   - ValidationError: invalid input or state
//
// Infeasible formations (not enough leaders or participants for a single team)
// and invalid team sizes are not errors at all: the engine reports them through
// an empty result and the unassigned pool.
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewFormationError("team above capacity", errors.ErrInvariantViolated).
//		WithStage("finalize").WithTeamSize(5)
//
//	// Semantic error
//	err := errors.NewNotFoundError("run", "2f1c...")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrInvariantViolated) { ... }
//
//	var formationErr *errors.FormationError
//	if errors.As(err, &formationErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
//
// # Error Classification
//
// Errors can be classified by severity and behavior:
//   - Retryable: transient errors that may succeed on retry
//   - UserFacing: errors safe to display to users (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Formation-related sentinel errors
var (
	// ErrInvariantViolated indicates a formation run broke one of its own
	// invariants (capacity, activity cap, conservation).
	ErrInvariantViolated = New("formation invariant violated")
	// ErrPlacementPanic indicates placing a single participant panicked.
	ErrPlacementPanic = New("placement panicked")
	// ErrNilSession indicates a formation call was made without a session.
	ErrNilSession = New("session is required")
)

// Storage-related sentinel errors
var (
	// ErrMalformedRecord indicates a data row could not be decoded.
	ErrMalformedRecord = New("malformed record")
	// ErrMissingColumn indicates a required column is absent from a header.
	ErrMissingColumn = New("missing column")
	// ErrStoreClosed indicates the store has been closed or never opened.
	ErrStoreClosed = New("store is not open")
)

// General sentinel errors
var (
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// TeamMateError is the base interface for all TeamMate errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type TeamMateError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	// This is used by errors.Is() for error comparison.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// FormationError represents an unexpected fault during a formation run.
// It carries the stage and the counts that were in play so the failure can
// be diagnosed from a single log line.
//
// Example:
//
//	err := errors.NewFormationError("participant counted twice", errors.ErrInvariantViolated)
//	err = err.WithStage("finalize").WithTeamSize(5).WithCounts(12, 2, 2)
//	fmt.Println(err)
//	// "formation error [stage=finalize, team_size=5, participants=12, teams=2, pool=2]: participant counted twice: formation invariant violated"
type FormationError struct {
	baseError
	RunID        string
	Stage        string
	TeamSize     int
	Participants int
	Teams        int
	PoolSize     int
}

// NewFormationError creates a new FormationError.
func NewFormationError(message string, cause error) *FormationError {
	return &FormationError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityCritical,
			retryable:  false,
			userFacing: false,
		},
		TeamSize:     -1,
		Participants: -1,
		Teams:        -1,
		PoolSize:     -1,
	}
}

// WithRunID adds the formation run identifier to the error context.
func (e *FormationError) WithRunID(id string) *FormationError {
	e.RunID = id
	return e
}

// WithStage adds the formation stage to the error context.
func (e *FormationError) WithStage(stage string) *FormationError {
	e.Stage = stage
	return e
}

// WithTeamSize adds the requested team size to the error context.
func (e *FormationError) WithTeamSize(size int) *FormationError {
	e.TeamSize = size
	return e
}

// WithCounts adds participant, team and pool counts to the error context.
func (e *FormationError) WithCounts(participants, teams, pool int) *FormationError {
	e.Participants = participants
	e.Teams = teams
	e.PoolSize = pool
	return e
}

// Error returns the formatted error message.
func (e *FormationError) Error() string {
	var parts []string
	if e.RunID != "" {
		parts = append(parts, fmt.Sprintf("run=%s", e.RunID))
	}
	if e.Stage != "" {
		parts = append(parts, fmt.Sprintf("stage=%s", e.Stage))
	}
	if e.TeamSize >= 0 {
		parts = append(parts, fmt.Sprintf("team_size=%d", e.TeamSize))
	}
	if e.Participants >= 0 {
		parts = append(parts, fmt.Sprintf("participants=%d", e.Participants))
	}
	if e.Teams >= 0 {
		parts = append(parts, fmt.Sprintf("teams=%d", e.Teams))
	}
	if e.PoolSize >= 0 {
		parts = append(parts, fmt.Sprintf("pool=%d", e.PoolSize))
	}

	prefix := "formation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("formation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *FormationError) Is(target error) bool {
	if _, ok := target.(*FormationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// StorageError represents errors reading or writing persisted data
// (participant files, team files, the run database).
//
// Example:
//
//	err := errors.NewStorageError("open participants", os.ErrNotExist)
//	err = err.WithPath("data/participants.csv")
type StorageError struct {
	baseError
	Path  string
	Table string
}

// NewStorageError creates a new StorageError.
func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithPath adds a file path to the error context.
func (e *StorageError) WithPath(path string) *StorageError {
	e.Path = path
	return e
}

// WithTable adds a database table name to the error context.
func (e *StorageError) WithTable(table string) *StorageError {
	e.Table = table
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *StorageError) WithRetryable(r bool) *StorageError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *StorageError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}

	prefix := "storage error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("storage error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *StorageError) Is(target error) bool {
	if _, ok := target.(*StorageError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("run", "abc123")
//	fmt.Println(err) // "run 'abc123' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
//
// Example:
//
//	err := errors.NewAlreadyExistsError("participant", "P001")
//	fmt.Println(err) // "participant 'P001' already exists"
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' already exists", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *AlreadyExistsError) WithCause(cause error) *AlreadyExistsError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *AlreadyExistsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' already exists: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("skill level out of range")
//	err = err.WithField("SkillLevel").WithValue(14).WithRow(7)
type ValidationError struct {
	baseError
	Field string
	Value any
	Row   int // 1-based line in the source file, 0 when not applicable
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithRow adds the 1-based source line to the error context.
func (e *ValidationError) WithRow(row int) *ValidationError {
	e.Row = row
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Row > 0 {
		parts = append(parts, fmt.Sprintf("row=%d", e.Row))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var tmErr TeamMateError
	if As(err, &tmErr) {
		return tmErr.IsRetryable()
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end users.
// This checks for:
//   - Errors implementing TeamMateError with IsUserFacing() returning true
//   - Semantic errors (NotFoundError, AlreadyExistsError, ValidationError)
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    fmt.Fprintln(os.Stderr, err)
//	} else {
//	    fmt.Fprintln(os.Stderr, "An internal error occurred")
//	    logger.Error("internal error", "err", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var tmErr TeamMateError
	if As(err, &tmErr) {
		return tmErr.IsUserFacing()
	}

	var notFound *NotFoundError
	var alreadyExists *AlreadyExistsError
	var validation *ValidationError

	if As(err, &notFound) || As(err, &alreadyExists) || As(err, &validation) {
		return true
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement TeamMateError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var tmErr TeamMateError
	if As(err, &tmErr) {
		return tmErr.Severity()
	}

	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this preserves the TeamMateError interface.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to save teams")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to load %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
