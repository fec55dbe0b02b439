package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed console error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so clones of a predefined error still compare equal.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Generic errors.
var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict     = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss    = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Backend collaborator errors. ErrUpstream covers transport failures and
// non-2xx replies; ErrBusiness covers a 2xx reply carrying success:false.
var (
	ErrUpstream = New("UPSTREAM_ERROR", http.StatusBadGateway, "backend request failed")
	ErrBusiness = New("BUSINESS_ERROR", http.StatusUnprocessableEntity, "backend rejected the request")
)

// Report filter validation errors, checked in this order.
var (
	ErrMissingDates  = New("MISSING_DATES", http.StatusBadRequest, "تاريخ البداية وتاريخ النهاية مطلوبان")
	ErrStartAfterEnd = New("START_AFTER_END", http.StatusBadRequest, "تاريخ البداية يجب أن يكون قبل تاريخ النهاية")
	ErrFutureDate    = New("FUTURE_DATE", http.StatusBadRequest, "لا يمكن اختيار تاريخ في المستقبل")
)

// ErrGenerationInProgress rejects a second generation on the same workspace.
var ErrGenerationInProgress = New("GENERATION_IN_PROGRESS", http.StatusConflict, "report generation already in progress")

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Message extracts the user-facing message of err, or fallback when err is
// not a typed error or carries no message.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
