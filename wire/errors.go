package wire

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failed exchange.
type ErrorCode int

const (
	ErrCodeTimeout    ErrorCode = iota
	ErrCodeConnection           // refused, reset, DNS
	ErrCodeAuth                 // 401, 403
	ErrCodeNotFound             // 404
	ErrCodeRateLimit            // 429
	ErrCodeClient               // any other 4xx
	ErrCodeServer               // 5xx
)

var codeNames = [...]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeClient:     "client",
	ErrCodeServer:     "server",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return "unknown"
	}
	return codeNames[c]
}

// Error is a failed exchange. A transport failure has StatusCode 0 and no
// body; otherwise the response had a non-2xx status and Body holds it,
// already drained.
type Error struct {
	StatusCode  int
	Code        ErrorCode
	Message     string
	Retryable   bool
	Body        []byte
	ContentType string
	Err         error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("wire: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("wire: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func transportError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Retryable: true, Err: err}
}

// NewTimeoutError wraps a deadline or timeout as a retryable failure.
func NewTimeoutError(err error) *Error { return transportError(ErrCodeTimeout, err) }

// NewConnectionError wraps a dial or I/O failure as a retryable failure.
func NewConnectionError(err error) *Error { return transportError(ErrCodeConnection, err) }

// ClassifyStatusCode returns nil for a 2xx status and the typed failure
// otherwise. 429, 502, 503 and 504 are retryable.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	e := &Error{
		StatusCode: statusCode,
		Code:       ErrCodeServer,
		Message:    fmt.Sprintf("HTTP %d %s", statusCode, http.StatusText(statusCode)),
		Body:       body,
	}
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.Code = ErrCodeAuth
	case http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case http.StatusTooManyRequests:
		e.Code, e.Retryable = ErrCodeRateLimit, true
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		e.Retryable = true
	default:
		if statusCode >= 400 && statusCode < 500 {
			e.Code = ErrCodeClient
		}
	}
	return e
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if e, ok := AsError(err); ok {
		return e.StatusCode
	}
	return 0
}

func hasCode(err error, code ErrorCode) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}

// IsTransportFailure reports a failure that produced no response at all.
func IsTransportFailure(err error) bool {
	e, ok := AsError(err)
	return ok && e.StatusCode == 0
}

func IsTimeout(err error) bool    { return hasCode(err, ErrCodeTimeout) }
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }
func IsNotFound(err error) bool   { return hasCode(err, ErrCodeNotFound) }

// IsClientError reports a 4xx response.
func IsClientError(err error) bool {
	s := StatusOf(err)
	return s >= 400 && s < 500
}

// IsServerError reports a 5xx response.
func IsServerError(err error) bool {
	s := StatusOf(err)
	return s >= 500 && s < 600
}

func IsRetryable(err error) bool {
	e, ok := AsError(err)
	return ok && e.Retryable
}
