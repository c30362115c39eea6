package fallback

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/kbukum/restwire/errors"
	"github.com/kbukum/restwire/signature"
	"github.com/kbukum/restwire/wire"
)

func withPolicy(p signature.FallbackPolicy) *signature.Signature {
	return signature.Declare("op", "GET", "/op").Consumes("application/xml").Fallback(p).MustBuild()
}

func statusError(status int, contentType, body string) error {
	e := wire.ClassifyStatusCode(status, []byte(body))
	e.ContentType = contentType
	return e
}

var (
	timeout    = wire.NewTimeoutError(stderrors.New("deadline exceeded"))
	refused    = wire.NewConnectionError(stderrors.New("connection refused"))
	notFound   = statusError(http.StatusNotFound, "", "")
	badRequest = statusError(http.StatusBadRequest, "", "")
	conflict   = statusError(http.StatusConflict, "", "")
	internal   = statusError(http.StatusInternalServerError, "", "")
	decode     = errors.DecodeFailure("application/xml", stderrors.New("EOF"))
)

func TestResolve_Default(t *testing.T) {
	sig := withPolicy(signature.Default)
	for _, failure := range []error{timeout, notFound, badRequest, internal, decode} {
		out := Resolve(sig, failure)
		if out.Kind != KindPropagate || out.Err != failure {
			t.Errorf("%v: got %s", failure, out)
		}
	}
}

func TestResolve_NullOnNotFound(t *testing.T) {
	sig := withPolicy(signature.NullOnNotFound)

	if out := Resolve(sig, notFound); out.Kind != KindEmpty || !out.Recovered() {
		t.Errorf("404: got %s", out)
	}
	for _, failure := range []error{timeout, refused, badRequest, conflict, internal, decode} {
		out := Resolve(sig, failure)
		if out.Kind != KindPropagate || out.Err != failure {
			t.Errorf("%v: got %s", failure, out)
		}
	}
}

func TestResolve_FalseIfUnavailable(t *testing.T) {
	sig := withPolicy(signature.FalseIfUnavailable)

	tests := []struct {
		name      string
		failure   error
		recovered bool
	}{
		{"timeout", timeout, true},
		{"connection refused", refused, true},
		{"not found", notFound, true},
		{"server error", internal, true},
		{"bad gateway", statusError(http.StatusBadGateway, "", ""), true},
		{"bad request", badRequest, false},
		{"decode failure", decode, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resolve(sig, tt.failure)
			if !tt.recovered {
				if out.Kind != KindPropagate {
					t.Errorf("got %s, want propagate", out)
				}
				return
			}
			if out.Kind != KindValue || out.Value != false {
				t.Errorf("got %s, want value(false)", out)
			}
		})
	}
}

func TestResolve_MapClientErrors(t *testing.T) {
	sig := withPolicy(signature.MapClientErrorsToDomainErrors)

	tests := []struct {
		status int
		code   errors.ErrorCode
	}{
		{http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{http.StatusUnauthorized, errors.ErrCodeUnauthorized},
		{http.StatusForbidden, errors.ErrCodeForbidden},
		{http.StatusNotFound, errors.ErrCodeNotFound},
		{http.StatusConflict, errors.ErrCodeConflict},
		{http.StatusTeapot, errors.ErrCodeClientError},
	}
	for _, tt := range tests {
		out := Resolve(sig, statusError(tt.status, "", ""))
		if out.Kind != KindReclassified {
			t.Fatalf("%d: got %s", tt.status, out)
		}
		de, ok := errors.AsDomainError(out.Err)
		if !ok {
			t.Fatalf("%d: expected DomainError, got %T", tt.status, out.Err)
		}
		if de.Code != tt.code || de.StatusCode != tt.status {
			t.Errorf("%d: got code %s status %d", tt.status, de.Code, de.StatusCode)
		}
		if !wire.IsClientError(de) {
			t.Errorf("%d: domain error lost its cause", tt.status)
		}
	}

	for _, failure := range []error{timeout, internal, decode} {
		if out := Resolve(sig, failure); out.Kind != KindPropagate || out.Err != failure {
			t.Errorf("%v: got %s", failure, out)
		}
	}
}

func TestResolve_MapClientErrors_UsesErrorDocumentMessage(t *testing.T) {
	sig := withPolicy(signature.MapClientErrorsToDomainErrors)
	body := `<errors><error><code>VLAN-2</code><message>Tag already in use</message></error></errors>`

	out := Resolve(sig, statusError(http.StatusConflict, "application/vnd.test.errors+xml", body))
	de, ok := errors.AsDomainError(out.Err)
	if !ok {
		t.Fatalf("expected DomainError, got %s", out)
	}
	if de.Code != errors.ErrCodeConflict || de.Message != "Tag already in use" {
		t.Errorf("got %+v", de)
	}
	if string(de.Body) != body {
		t.Errorf("body not kept: %q", de.Body)
	}
}

func TestResolve_PropagateDomainErrors(t *testing.T) {
	sig := withPolicy(signature.PropagateDomainExceptionOnClientOrNotFound)

	t.Run("error document", func(t *testing.T) {
		body := `{"collection":[{"code":"DC-0","message":"Unknown datacenter"},{"code":"DC-1","message":"Retry later"}]}`
		out := Resolve(sig, statusError(http.StatusNotFound, "application/json", body))
		de, ok := errors.AsDomainError(out.Err)
		if out.Kind != KindReclassified || !ok {
			t.Fatalf("got %s", out)
		}
		if de.Code != errors.ErrCodeRemoteService || len(de.Errors) != 2 || de.Errors[0].Code != "DC-0" {
			t.Errorf("got %+v", de)
		}
		if de.Message != "Unknown datacenter" {
			t.Errorf("message = %q", de.Message)
		}
	})

	t.Run("synthesized from status", func(t *testing.T) {
		out := Resolve(sig, badRequest)
		de, ok := errors.AsDomainError(out.Err)
		if !ok {
			t.Fatalf("got %s", out)
		}
		if len(de.Errors) != 1 || de.Errors[0].Code != "400" || de.Errors[0].Message != "Bad Request" {
			t.Errorf("got %+v", de.Errors)
		}
	})

	t.Run("undecodable body", func(t *testing.T) {
		out := Resolve(sig, statusError(http.StatusForbidden, "application/xml", "<html>denied"))
		de, ok := errors.AsDomainError(out.Err)
		if !ok || de.Errors[0].Code != "403" {
			t.Errorf("got %s", out)
		}
	})

	for _, failure := range []error{timeout, refused, internal, decode} {
		if out := Resolve(sig, failure); out.Kind != KindPropagate || out.Err != failure {
			t.Errorf("%v: got %s", failure, out)
		}
	}
}

func TestResolve_ReleaseAndDiscardPropagates(t *testing.T) {
	sig := withPolicy(signature.ReleaseAndDiscard)
	if out := Resolve(sig, notFound); out.Kind != KindPropagate {
		t.Errorf("got %s", out)
	}
}

func TestOutcome_Error(t *testing.T) {
	if Empty().Error() != nil || Value(false).Error() != nil {
		t.Error("recovered outcomes carry no error")
	}
	if Propagate(timeout).Error() != timeout {
		t.Error("propagate must surface the failure")
	}
}
