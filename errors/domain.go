package errors

import (
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ServiceError is one entry of a remote service's error document.
type ServiceError struct {
	Code    string `json:"code" xml:"code" yaml:"code"`
	Message string `json:"message" xml:"message" yaml:"message"`
}

// ServiceErrors is the error document returned by the remote service.
//
// XML form:  <errors><error><code/><message/></error></errors>
// JSON form: {"collection":[{"code":"","message":""}]}
type ServiceErrors struct {
	XMLName xml.Name       `json:"-" xml:"errors" yaml:"-"`
	Errors  []ServiceError `json:"collection" xml:"error" yaml:"collection"`
}

// DomainError is a remote client error reclassified by a fallback policy.
// It keeps the original status and body for callers that need them.
type DomainError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Errors is the remote error document, when one could be decoded.
	Errors []ServiceError
	// Body is the raw response body.
	Body []byte
	// Cause is the failure that was reclassified.
	Cause error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if len(e.Errors) > 0 {
		parts := make([]string, len(e.Errors))
		for i, se := range e.Errors {
			parts[i] = se.Code + " " + se.Message
		}
		return fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.StatusCode, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// Unwrap returns the reclassified failure.
func (e *DomainError) Unwrap() error { return e.Cause }

// AsDomainError extracts a DomainError from err's chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsDomainError reports whether err's chain holds a DomainError.
func IsDomainError(err error) bool {
	_, ok := AsDomainError(err)
	return ok
}

// CodeForStatus maps a 4xx status to the closest error code.
func CodeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidInput
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	default:
		return ErrCodeClientError
	}
}
