package services

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Code identifies a business-rule failure. Codes are part of the API
// contract; the HTTP layer maps them to client-facing statuses.
type Code string

const (
	CodeValidation           Code = "VALIDATION_ERROR"
	CodeInvalidTransition    Code = "INVALID_STATE_TRANSITION"
	CodeForbidden            Code = "FORBIDDEN"
	CodeCapacityExceeded     Code = "CAPACITY_EXCEEDED"
	CodeAlreadyEnrolled      Code = "ALREADY_ENROLLED"
	CodePrerequisiteNotMet   Code = "PREREQUISITE_NOT_MET"
	CodeCannotCancel         Code = "CANNOT_CANCEL"
	CodeSessionNotInTraining Code = "SESSION_NOT_IN_TRAINING"
	CodeNoSessionsScheduled  Code = "NO_SESSIONS_SCHEDULED"
	CodeThresholdNotMet      Code = "COMPLETION_THRESHOLD_NOT_MET"
	CodeAlreadyCompleted     Code = "ALREADY_COMPLETED"
	CodeNotFound             Code = "NOT_FOUND"
)

// Error is a business-rule failure. The message always names the offending
// entity and the current-vs-required state or role, so the caller can render
// an actionable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Errorf builds a business error with a formatted message.
func Errorf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrCode returns the business code carried by err, or "" for plain errors.
func ErrCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HTTPStatus maps a business error to its client-facing status code.
// Plain errors (data-store failures) map to 500.
func HTTPStatus(err error) int {
	switch ErrCode(err) {
	case CodeValidation:
		return fiber.StatusUnprocessableEntity
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeAlreadyEnrolled, CodeAlreadyCompleted, CodeCapacityExceeded:
		return fiber.StatusConflict
	case CodeInvalidTransition, CodePrerequisiteNotMet, CodeCannotCancel,
		CodeSessionNotInTraining, CodeNoSessionsScheduled, CodeThresholdNotMet:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
