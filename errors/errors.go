package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"net/http"
)

// AppError is an error raised by this module itself, as opposed to one a
// remote service reported (see DomainError).
type AppError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	// HTTPStatus is the closest HTTP status, or zero when none applies.
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into e and returns e.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

// New returns an AppError whose Retryable flag follows code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Retryable: code.Retryable()}
}

// detailed is New with a single detail attached.
func detailed(code ErrorCode, status int, key, value, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...), status).WithDetail(key, value)
}

// UnknownOperation reports a registry miss for key.
func UnknownOperation(key string) *AppError {
	return detailed(ErrCodeUnknownOperation, 0, "operation", key, "no signature declared for %s", key)
}

// ArgumentBinding reports arguments that do not fit an operation's bindings.
func ArgumentBinding(operation, reason string) *AppError {
	return detailed(ErrCodeArgumentBinding, 0, "operation", operation, "%s: %s", operation, reason)
}

// EncodeFailure reports a request body that could not be serialized.
func EncodeFailure(mediaType string, cause error) *AppError {
	return detailed(ErrCodeEncodeFailure, 0, "media_type", mediaType, "cannot encode %s payload", mediaType).WithCause(cause)
}

// DecodeFailure reports a response body that could not be decoded.
func DecodeFailure(mediaType string, cause error) *AppError {
	return detailed(ErrCodeDecodeFailure, 0, "media_type", mediaType, "cannot decode %s body", mediaType).WithCause(cause)
}

// UnsupportedMediaType reports a media type no codec handles.
func UnsupportedMediaType(mediaType string) *AppError {
	return detailed(ErrCodeUnsupportedMediaType, http.StatusUnsupportedMediaType, "media_type", mediaType,
		"no codec registered for %q", mediaType)
}

// NotFound reports a missing resource. An empty id is left out of Details.
func NotFound(resource, id string) *AppError {
	err := detailed(ErrCodeNotFound, http.StatusNotFound, "resource", resource, "The requested %s was not found.", resource)
	if id != "" {
		err.WithDetail("id", id)
	}
	return err
}

// Validation reports invalid input.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// MissingField reports a required field left empty.
func MissingField(field string) *AppError {
	return detailed(ErrCodeMissingField, http.StatusBadRequest, "field", field, "Missing required field: %s", field)
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.", http.StatusInternalServerError).WithCause(cause)
}

// AsAppError finds an AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsAppError reports whether err's chain holds an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// IsCode reports whether err's chain holds an AppError or DomainError
// carrying code. A DomainError wins when both are present.
func IsCode(err error, code ErrorCode) bool {
	if de, ok := AsDomainError(err); ok {
		return de.Code == code
	}
	if ae, ok := AsAppError(err); ok {
		return ae.Code == code
	}
	return false
}
