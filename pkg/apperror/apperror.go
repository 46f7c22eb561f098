package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the machine readable error code sent to clients as error_code.
type Code string

const (
	CodeInternal            Code = "INTERNAL_ERROR"
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeNotFound            Code = "NOT_FOUND"
	CodeAlreadyExists       Code = "ALREADY_EXISTS"
	CodePermissionDenied    Code = "PERMISSION_DENIED"
	CodeDatabase            Code = "DATABASE_ERROR"
	CodeIntegrity           Code = "INTEGRITY_ERROR"
	CodeConnection          Code = "CONNECTION_ERROR"
	CodeBusinessRule        Code = "BUSINESS_RULE_VIOLATION"
	CodeOperationNotAllowed Code = "OPERATION_NOT_ALLOWED"
	CodeResourceConflict    Code = "RESOURCE_CONFLICT"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeRateLimited         Code = "RATE_LIMITED"
)

var statusByCode = map[Code]int{
	CodeInternal:            http.StatusInternalServerError,
	CodeValidation:          http.StatusBadRequest,
	CodeNotFound:            http.StatusNotFound,
	CodeAlreadyExists:       http.StatusConflict,
	CodePermissionDenied:    http.StatusForbidden,
	CodeDatabase:            http.StatusInternalServerError,
	CodeIntegrity:           http.StatusConflict,
	CodeConnection:          http.StatusServiceUnavailable,
	CodeBusinessRule:        http.StatusBadRequest,
	CodeOperationNotAllowed: http.StatusForbidden,
	CodeResourceConflict:    http.StatusConflict,
	CodeUnauthorized:        http.StatusUnauthorized,
	CodeRateLimited:         http.StatusTooManyRequests,
}

// Error is the single error type that crosses layer boundaries.
// Op names the failing operation (e.g. "task.create") and Err keeps the cause.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
	Op      string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Code so errors.Is(err, apperror.NotFound("")) works as a kind check.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// HTTPStatus returns the status code the error maps to at the HTTP boundary.
func (e *Error) HTTPStatus() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WithDetail returns the error with one extra entry in Details.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

func PermissionDenied(message string) *Error {
	return New(CodePermissionDenied, message)
}

func OperationNotAllowed(message string) *Error {
	return New(CodeOperationNotAllowed, message)
}

func ResourceConflict(message string) *Error {
	return New(CodeResourceConflict, message)
}

func BusinessRule(message string) *Error {
	return New(CodeBusinessRule, message)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

func RateLimited(message string) *Error {
	return New(CodeRateLimited, message)
}

func Internal(message string, err error) *Error {
	return &Error{Code: CodeInternal, Message: message, Err: err}
}

// Database wraps a storage failure that is not a constraint violation.
func Database(op string, err error) *Error {
	return &Error{
		Code:    CodeDatabase,
		Message: "Database operation failed",
		Op:      op,
		Err:     err,
		Details: map[string]any{"operation": op},
	}
}

// Integrity wraps a unique, foreign key or check constraint violation.
func Integrity(op string, err error) *Error {
	return &Error{
		Code:    CodeIntegrity,
		Message: "Data integrity violation",
		Op:      op,
		Err:     err,
		Details: map[string]any{"operation": op},
	}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an *Error with the given code.
func HasCode(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// Wrap keeps *Error values untouched and turns anything else into a database
// error for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	return Database(op, err)
}
