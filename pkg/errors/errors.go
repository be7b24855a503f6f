package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error. Core services return these as
// plain values; nothing is thrown across the service boundary.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrInternal
)

// Front-desk error codes
const (
	ErrInvalidService ErrorCode = iota + 2000
	ErrNoEligibleTherapist
	ErrNoneAvailableNow
	ErrInconsistentTherapistState
	ErrQueueFull
	ErrInvalidCommissionRate
	ErrInvalidRating
)

// CodeOf extracts the error code from an error chain; 0 means no AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func InvalidService(serviceID string) *AppError {
	return &AppError{
		Code:    ErrInvalidService,
		Message: fmt.Sprintf("service %s does not exist", serviceID),
	}
}

func NoEligibleTherapist() *AppError {
	return &AppError{
		Code:    ErrNoEligibleTherapist,
		Message: "no therapist qualifies for the requested service and preference",
	}
}

func NoneAvailableNow() *AppError {
	return &AppError{
		Code:    ErrNoneAvailableNow,
		Message: "no qualified therapist is available right now",
	}
}

func InconsistentTherapistState(therapistID string) *AppError {
	return &AppError{
		Code:    ErrInconsistentTherapistState,
		Message: fmt.Sprintf("therapist %s is occupied without a service end time", therapistID),
	}
}

func QueueFull(capacity int) *AppError {
	return &AppError{
		Code:    ErrQueueFull,
		Message: fmt.Sprintf("waiting queue is at capacity (%d)", capacity),
	}
}

func InvalidCommissionRate(rate float64) *AppError {
	return &AppError{
		Code:    ErrInvalidCommissionRate,
		Message: fmt.Sprintf("commission rate %.1f is outside [0, 100]", rate),
	}
}

func InvalidRating(rating float64) *AppError {
	return &AppError{
		Code:    ErrInvalidRating,
		Message: fmt.Sprintf("rating %.1f is outside [0, 5]", rating),
	}
}
