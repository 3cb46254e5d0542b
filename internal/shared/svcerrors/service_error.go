// Package svcerrors defines the coded errors that handlers turn into JSON error bodies.
package svcerrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	categoryInvalidArgument  = "invalid_argument"
	categoryResourceConflict = "resource_conflict"
	categoryUnavailable      = "unavailable"
	categoryInternal         = "internal"
)

var categoryStatus = map[string]int{
	categoryInvalidArgument:  http.StatusBadRequest,
	categoryResourceConflict: http.StatusConflict,
	categoryUnavailable:      http.StatusServiceUnavailable,
	categoryInternal:         http.StatusInternalServerError,
}

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"

	internalMessage = "internal server error"
)

// Detail describes the failure of a single item inside a multi-item request.
type Detail struct {
	Target  string `json:"target"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServiceError is an error a client can act on. Code is stable and owned by the service,
// Message is safe to show, Cause stays server side.
type ServiceError struct {
	Category       string
	Code           string
	Message        string
	Cause          error
	HttpStatusCode int
	Details        []Detail
}

func newServiceError(category, code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       category,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: categoryStatus[category],
	}
}

func NewInvalidArgumentError(code, message string, cause error) *ServiceError {
	return newServiceError(categoryInvalidArgument, code, message, cause)
}

// NewResourceConflictError reports a conflict the caller may resolve by retrying.
func NewResourceConflictError(code, message string, cause error) *ServiceError {
	return newServiceError(categoryResourceConflict, code, message, cause)
}

// NewUnavailableError reports a dependency outage. Callers may retry the request later.
func NewUnavailableError(code, message string, cause error) *ServiceError {
	return newServiceError(categoryUnavailable, code, message, cause)
}

// NewInternalError hides cause behind a generic message.
func NewInternalError(code string, cause error) *ServiceError {
	return newServiceError(categoryInternal, code, internalMessage, cause)
}

func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// WithDetails returns a copy of e carrying the given details.
func (e *ServiceError) WithDetails(details []Detail) *ServiceError {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}

// IsRetryable reports whether the caller may retry the same request.
func (e *ServiceError) IsRetryable() bool {
	return e.Category == categoryResourceConflict || e.Category == categoryUnavailable
}
