package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUpstreamGone = errors.New("upstream resource not found")
	ErrMalformed    = errors.New("malformed identifier")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrTransport    = errors.New("upstream transport failure")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
)

// ServerErrorMessage is the only text a caller sees for unexpected failures.
const ServerErrorMessage = "Server Error"

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

// NewNotFound builds a not-found error whose Message is shown to the caller as is.
func NewNotFound(msg, details string) *AppError {
	return NewAppError(ErrNotFound, msg, details, nil)
}

// NewUpstreamNotFound reports a resource missing on a remote service. Unlike
// NewNotFound it answers 404.
func NewUpstreamNotFound(msg, details string) *AppError {
	return NewAppError(ErrUpstreamGone, msg, details, nil)
}

func NewMalformed(msg, details string, err error) *AppError {
	return NewAppError(ErrMalformed, msg, details, err)
}

func NewConflict(resource, field, value string) *AppError {
	msg := fmt.Sprintf("%s conflict", resource)
	details := fmt.Sprintf("%s with %s '%s' already exists", resource, field, value)
	return NewAppError(ErrConflict, msg, details, nil)
}

func NewTransport(details string, err error) *AppError {
	return NewAppError(ErrTransport, ServerErrorMessage, details, err)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, ServerErrorMessage, details, err)
}

func NewUnauthorized(msg string, err error) *AppError {
	return NewAppError(ErrUnauthorized, msg, "", err)
}

// FieldError is one itemised validation failure.
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
	Value    any    `json:"value,omitempty"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (%d field errors)", e.Fields[0].Msg, len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func NewValidation(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ToHTTPStatus maps an error kind to a status. Not-found and malformed
// identifiers answer 400, which is what the API clients expect.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMalformed), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstreamGone):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ToJSON renders the response body for err. Server-side failures never leak detail.
func ToJSON(err error) gin.H {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return gin.H{"errors": vErr.Fields}
	}
	if ToHTTPStatus(err) == http.StatusInternalServerError {
		return gin.H{"msg": ServerErrorMessage}
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return gin.H{"msg": appErr.Message}
	}
	return gin.H{"msg": err.Error()}
}
