package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind names a class of failure surfaced in the error envelope
type ErrorKind string

const (
	KindValidation     ErrorKind = "ValidationError"
	KindDuplicateEmail ErrorKind = "DuplicateEmailError"
	KindUserNotFound   ErrorKind = "UserNotFoundError"
	KindInvalidPass    ErrorKind = "InvalidPasswordError"
	KindUpstreamEmpty  ErrorKind = "UpstreamEmptyResponseError"
	KindResponseParse  ErrorKind = "ResponseParseError"
	KindUpstreamCall   ErrorKind = "UpstreamCallError"
	KindInternal       ErrorKind = "InternalError"
)

var kindStatus = map[ErrorKind]int{
	KindValidation:     http.StatusBadRequest,
	KindDuplicateEmail: http.StatusBadRequest,
	KindUserNotFound:   http.StatusBadRequest,
	KindInvalidPass:    http.StatusBadRequest,
	KindUpstreamEmpty:  http.StatusInternalServerError,
	KindResponseParse:  http.StatusInternalServerError,
	KindUpstreamCall:   http.StatusInternalServerError,
	KindInternal:       http.StatusInternalServerError,
}

// AppError carries an HTTP status together with a user-facing message.
// Details is diagnostic and must never hold secrets.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError whose status follows from its kind
func NewAppError(kind ErrorKind, message string, details any) *AppError {
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &AppError{Kind: kind, Status: status, Message: message, Details: details}
}

// Wrap attaches a cause to the error
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

// AsAppError unwraps err into an AppError, falling back to InternalError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(KindInternal, "Internal server error", nil).Wrap(err)
}
