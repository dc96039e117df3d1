// Package apperr defines the application error codes shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	CodeValidation   Code = "VALIDATION_FAILED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeGeneration   Code = "GENERATION_FAILED"
	CodeEnhancement  Code = "ENHANCEMENT_FAILED"
	CodeDatabase     Code = "DATABASE_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
)

// Error is a structured application error.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the code to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Validation creates a non-retryable input error.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NotFound creates an error for a missing entity.
func NotFound(entity string, details string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: entity + " not found",
		Details: details,
	}
}

// Database wraps a store failure.
func Database(op string, err error) *Error {
	return &Error{
		Code:    CodeDatabase,
		Message: "database error during " + op,
		Details: err.Error(),
		Err:     err,
	}
}

// Generation wraps a failure while producing a single combination.
func Generation(details string, err error) *Error {
	return &Error{
		Code:    CodeGeneration,
		Message: "content generation failed",
		Details: details,
		Err:     err,
	}
}

// Enhancement wraps a text-generation failure.
func Enhancement(err error) *Error {
	return &Error{
		Code:    CodeEnhancement,
		Message: "content enhancement failed",
		Details: err.Error(),
		Err:     err,
	}
}

// Unauthorized creates an authentication error.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// MessageOf returns a client-safe message for err.
func MessageOf(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != CodeDatabase {
		return ae.Message
	}
	return fallback
}
