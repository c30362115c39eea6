package errors

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Transport codes. These are the retryable ones.
const (
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeConnectionFailed   ErrorCode = "CONNECTION_FAILED"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	// ErrCodeTransportFailure means the request never produced a response.
	ErrCodeTransportFailure ErrorCode = "TRANSPORT_FAILURE"
)

// Codes raised on the client side of the exchange, before a request is
// sent or after a response arrives.
const (
	// ErrCodeUnknownOperation means no signature is declared for the key.
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"
	// ErrCodeArgumentBinding means the arguments do not fit the signature.
	ErrCodeArgumentBinding      ErrorCode = "ARGUMENT_BINDING"
	ErrCodeEncodeFailure        ErrorCode = "ENCODE_FAILURE"
	ErrCodeDecodeFailure        ErrorCode = "DECODE_FAILURE"
	ErrCodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField         ErrorCode = "MISSING_FIELD"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// Codes a 4xx response is reclassified to. See CodeForStatus.
const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	// ErrCodeClientError is any other 4xx.
	ErrCodeClientError ErrorCode = "CLIENT_ERROR"
	// ErrCodeRemoteService carries the remote service's own error document.
	ErrCodeRemoteService ErrorCode = "REMOTE_SERVICE_ERROR"
)

// Retryable reports whether a call that failed with c may be repeated.
func (c ErrorCode) Retryable() bool {
	switch c {
	case ErrCodeServiceUnavailable, ErrCodeConnectionFailed, ErrCodeTimeout, ErrCodeTransportFailure:
		return true
	}
	return false
}
