package wire

import (
	"context"
	"fmt"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeClient, "client"},
		{ErrCodeServer, "server"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "HTTP 404 Not Found"}
	if got, want := e.Error(), "wire: not_found (HTTP 404): HTTP 404 Not Found"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	e = NewConnectionError(fmt.Errorf("connection refused"))
	if got, want := e.Error(), "wire: connection: connection refused"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
		retry  bool
	}{
		{401, ErrCodeAuth, false},
		{403, ErrCodeAuth, false},
		{404, ErrCodeNotFound, false},
		{409, ErrCodeClient, false},
		{412, ErrCodeClient, false},
		{429, ErrCodeRateLimit, true},
		{500, ErrCodeServer, false},
		{502, ErrCodeServer, true},
		{503, ErrCodeServer, true},
		{504, ErrCodeServer, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			e := ClassifyStatusCode(tt.status, []byte("body"))
			if e == nil {
				t.Fatal("expected an error")
			}
			if e.Code != tt.code || e.Retryable != tt.retry || e.StatusCode != tt.status {
				t.Errorf("got %+v", e)
			}
			if string(e.Body) != "body" {
				t.Errorf("Body = %q", e.Body)
			}
		})
	}
	for _, s := range []int{200, 201, 204} {
		if e := ClassifyStatusCode(s, nil); e != nil {
			t.Errorf("ClassifyStatusCode(%d) = %v, want nil", s, e)
		}
	}
}

func TestPredicates(t *testing.T) {
	timeout := fmt.Errorf("exchange: %w", NewTimeoutError(context.DeadlineExceeded))
	refused := NewConnectionError(fmt.Errorf("dial tcp: connection refused"))
	notFound := ClassifyStatusCode(404, nil)
	conflict := ClassifyStatusCode(409, nil)
	unavailable := ClassifyStatusCode(503, nil)
	plain := fmt.Errorf("plain")

	tests := []struct {
		name  string
		check func(error) bool
		yes   []error
		no    []error
	}{
		{"transport", IsTransportFailure, []error{timeout, refused}, []error{notFound, plain}},
		{"timeout", IsTimeout, []error{timeout}, []error{refused, plain}},
		{"connection", IsConnection, []error{refused}, []error{timeout}},
		{"not found", IsNotFound, []error{notFound}, []error{conflict, refused}},
		{"client", IsClientError, []error{notFound, conflict}, []error{unavailable, refused}},
		{"server", IsServerError, []error{unavailable}, []error{conflict, plain}},
		{"retryable", IsRetryable, []error{timeout, refused, unavailable}, []error{conflict, plain}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, err := range tt.yes {
				if !tt.check(err) {
					t.Errorf("expected true for %v", err)
				}
			}
			for _, err := range tt.no {
				if tt.check(err) {
					t.Errorf("expected false for %v", err)
				}
			}
		})
	}

	if StatusOf(timeout) != 0 || StatusOf(conflict) != 409 || StatusOf(plain) != 0 {
		t.Error("StatusOf mismatch")
	}
}
