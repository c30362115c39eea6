package errors

import (
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew_Retryable(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeTimeout, true},
		{ErrCodeTransportFailure, true},
		{ErrCodeServiceUnavailable, true},
		{ErrCodeNotFound, false},
		{ErrCodeArgumentBinding, false},
		{ErrCodeRemoteService, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New(tt.code, "msg", 0)
			if err.Retryable != tt.want {
				t.Errorf("Retryable = %v, want %v", err.Retryable, tt.want)
			}
			if tt.code.Retryable() != tt.want {
				t.Errorf("%s.Retryable() = %v", tt.code, !tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
		detail string
	}{
		{"unknown operation", UnknownOperation("getRack(int)"), ErrCodeUnknownOperation, 0, "operation"},
		{"argument binding", ArgumentBinding("getRack", "argument 0 is nil"), ErrCodeArgumentBinding, 0, "operation"},
		{"encode", EncodeFailure("application/xml", cause), ErrCodeEncodeFailure, 0, "media_type"},
		{"decode", DecodeFailure("application/json", cause), ErrCodeDecodeFailure, 0, "media_type"},
		{"unsupported media", UnsupportedMediaType("text/csv"), ErrCodeUnsupportedMediaType, http.StatusUnsupportedMediaType, "media_type"},
		{"not found", NotFound("rack", "7"), ErrCodeNotFound, http.StatusNotFound, "resource"},
		{"validation", Validation("bad"), ErrCodeInvalidInput, http.StatusBadRequest, ""},
		{"missing field", MissingField("name"), ErrCodeMissingField, http.StatusBadRequest, "field"},
		{"internal", Internal(cause), ErrCodeInternal, http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", tt.err.HTTPStatus, tt.status)
			}
			if tt.detail != "" {
				if _, ok := tt.err.Details[tt.detail]; !ok {
					t.Errorf("missing detail %q in %v", tt.detail, tt.err.Details)
				}
			}
			if !IsCode(tt.err, tt.code) {
				t.Errorf("IsCode(%s) = false", tt.code)
			}
		})
	}
}

func TestNotFound_EmptyID(t *testing.T) {
	err := NotFound("datacenter", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no id detail when id is empty")
	}
}

func TestAppError_Chain(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := DecodeFailure("application/xml", cause).WithDetail("operation", "getRack(Datacenter,int)")

	if !stderrors.Is(err, cause) {
		t.Error("expected the cause in the chain")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := fmt.Errorf("invoke: %w", err)
	ae, ok := AsAppError(wrapped)
	if !ok || ae != err {
		t.Fatal("expected AsAppError to find the error through wrapping")
	}
	if !IsAppError(wrapped) || IsDomainError(wrapped) {
		t.Error("wrong error kind")
	}
	if ae.Details["operation"] != "getRack(Datacenter,int)" {
		t.Errorf("details = %v", ae.Details)
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := Validation("bad").WithDetails(map[string]any{"a": 1}).WithDetails(map[string]any{"b": 2})
	if len(err.Details) != 2 {
		t.Errorf("details = %v", err.Details)
	}
	if got := Validation("x").WithDetails(nil); got.Details == nil {
		t.Error("expected an initialized map")
	}
}

func TestDomainError(t *testing.T) {
	cause := fmt.Errorf("HTTP 409")
	de := &DomainError{
		StatusCode: http.StatusConflict,
		Code:       ErrCodeConflict,
		Message:    "The tag is already in use",
		Errors:     []ServiceError{{Code: "VLAN-7", Message: "The tag is already in use"}},
		Cause:      cause,
	}
	err := fmt.Errorf("checkTagAvailability: %w", de)

	got, ok := AsDomainError(err)
	if !ok || got != de {
		t.Fatal("expected AsDomainError to unwrap")
	}
	if !IsCode(err, ErrCodeConflict) {
		t.Error("IsCode(CONFLICT) = false")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected the cause in the chain")
	}
	if want := "CONFLICT (HTTP 409): VLAN-7 The tag is already in use"; de.Error() != want {
		t.Errorf("Error() = %q, want %q", de.Error(), want)
	}

	bare := &DomainError{StatusCode: 400, Code: ErrCodeInvalidInput, Message: "Bad Request"}
	if want := "INVALID_INPUT (HTTP 400): Bad Request"; bare.Error() != want {
		t.Errorf("Error() = %q, want %q", bare.Error(), want)
	}
}

func TestServiceErrors_XML(t *testing.T) {
	body := `<errors><error><code>DC-0</code><message>Datacenter does not exist</message></error>` +
		`<error><code>RACK-3</code><message>Rack is busy</message></error></errors>`
	var doc ServiceErrors
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Errors) != 2 || doc.Errors[1].Code != "RACK-3" {
		t.Errorf("errors = %+v", doc.Errors)
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := map[int]ErrorCode{
		http.StatusBadRequest:          ErrCodeInvalidInput,
		http.StatusUnauthorized:        ErrCodeUnauthorized,
		http.StatusForbidden:           ErrCodeForbidden,
		http.StatusNotFound:            ErrCodeNotFound,
		http.StatusConflict:            ErrCodeConflict,
		http.StatusPreconditionFailed:  ErrCodeClientError,
		http.StatusUnprocessableEntity: ErrCodeClientError,
	}
	for status, want := range tests {
		if got := CodeForStatus(status); got != want {
			t.Errorf("CodeForStatus(%d) = %s, want %s", status, got, want)
		}
	}
}

func TestIsCode_Plain(t *testing.T) {
	if IsCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("plain errors carry no code")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("nil carries no code")
	}
}
