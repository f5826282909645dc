package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ValidationError indicates malformed input or a violated data invariant
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with a formatted message
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError indicates an operation that clashes with existing state:
// a resource already reserved for an overlapping window, a duplicate
// identifier, or a discharge naming a bed the patient does not hold.
// ResourceID is zero when the conflict is not tied to a specific resource.
type ConflictError struct {
	ResourceID uint
	Reason     string
}

func (e *ConflictError) Error() string {
	if e.ResourceID != 0 {
		return fmt.Sprintf("resource %d: %s", e.ResourceID, e.Reason)
	}
	return e.Reason
}

// NewConflict creates a ConflictError not tied to a specific resource
func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// NewResourceConflict creates a ConflictError for a specific resource
func NewResourceConflict(resourceID uint, reason string) *ConflictError {
	return &ConflictError{ResourceID: resourceID, Reason: reason}
}

// InvalidStateError indicates a booking transition that is illegal from the
// booking's current status
type InvalidStateError struct {
	Action  string
	Current string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a booking in status %q", e.Action, e.Current)
}

// NewInvalidState creates an InvalidStateError
func NewInvalidState(action, current string) *InvalidStateError {
	return &InvalidStateError{Action: action, Current: current}
}

// TimeoutError indicates lock acquisition exceeded its bound. Unlike
// ConflictError the same request may be retried as-is.
type TimeoutError struct {
	ResourceID uint
	Waited     time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for lock on resource %d", e.Waited, e.ResourceID)
}

// NewTimeout creates a TimeoutError for a resource lock
func NewTimeout(resourceID uint, waited time.Duration) *TimeoutError {
	return &TimeoutError{ResourceID: resourceID, Waited: waited}
}

// NotFoundError indicates a referenced record does not exist
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NewNotFound creates a NotFoundError
func NewNotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// HTTPStatus maps a typed engine error to its HTTP status code.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	var (
		validation   *ValidationError
		conflict     *ConflictError
		invalidState *InvalidStateError
		timeout      *TimeoutError
		notFound     *NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &invalidState):
		return http.StatusConflict
	case errors.As(err, &timeout):
		return http.StatusServiceUnavailable
	case errors.As(err, &notFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
