package response

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/kbukum/restwire/codec/sse"
	"github.com/kbukum/restwire/errors"
	"github.com/kbukum/restwire/signature"
	"github.com/kbukum/restwire/wire"
)

type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

func newResponse(status int, contentType, body string) (*wire.Response, *trackedBody) {
	tb := &trackedBody{Reader: strings.NewReader(body)}
	var headers wire.Headers
	if contentType != "" {
		headers = headers.Add("Content-Type", contentType)
	}
	return &wire.Response{StatusCode: status, Headers: headers, Body: tb}, tb
}

type flavor struct {
	XMLName xml.Name `xml:"flavor"`
	ID      string   `xml:"id" json:"id"`
	RAM     int      `xml:"ram" json:"ram"`
}

func declare(parser signature.ParserVariant, consumes string) *signature.Signature {
	return signature.Declare("op", "GET", "/op").Consumes(consumes).Parser(parser).MustBuild()
}

func TestSelect_ReturnsDeclaredVariant(t *testing.T) {
	variants := []signature.ParserVariant{
		signature.StructuredDecode, signature.StreamDecode, signature.PlainText,
		signature.BooleanOn2xx, signature.ReleaseOnly,
	}
	for _, v := range variants {
		t.Run(v.String(), func(t *testing.T) {
			if got := Select(declare(v, "application/json")); got != v {
				t.Errorf("Select = %s, want %s", got, v)
			}
		})
	}
}

func TestStructured_DecodesConsumedType(t *testing.T) {
	p := NewParsers(nil)
	resp, body := newResponse(200, "application/json", `{"id":"1","ram":512}`)

	var f flavor
	if err := p.Parse(declare(signature.StructuredDecode, "application/json"), resp, &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != "1" || f.RAM != 512 {
		t.Errorf("decoded %+v", f)
	}
	if !body.closed {
		t.Error("body not closed")
	}
}

func TestStructured_VendorXML(t *testing.T) {
	p := NewParsers(nil)
	resp, _ := newResponse(200, "application/vnd.test.flavor+xml", `<flavor><id>2</id><ram>64</ram></flavor>`)

	var f flavor
	if err := p.Parse(declare(signature.StructuredDecode, "application/vnd.test.flavor+xml"), resp, &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != "2" || f.RAM != 64 {
		t.Errorf("decoded %+v", f)
	}
}

func TestStructured_DecodeFailure(t *testing.T) {
	p := NewParsers(nil)
	resp, body := newResponse(200, "application/json", `{not json`)

	var f flavor
	err := p.Parse(declare(signature.StructuredDecode, "application/json"), resp, &f)
	if !errors.IsCode(err, errors.ErrCodeDecodeFailure) {
		t.Errorf("expected DECODE_FAILURE, got %v", err)
	}
	if !body.closed {
		t.Error("body not closed")
	}
}

func TestStructured_EmptyBodyLeavesTarget(t *testing.T) {
	p := NewParsers(nil)
	resp, _ := newResponse(204, "", "")

	f := flavor{ID: "keep"}
	if err := p.Parse(declare(signature.StructuredDecode, "application/json"), resp, &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != "keep" {
		t.Errorf("target modified: %+v", f)
	}
}

func TestPlainText(t *testing.T) {
	p := NewParsers(nil)
	resp, body := newResponse(200, "text/plain", "KVM")

	var s string
	if err := p.Parse(declare(signature.PlainText, ""), resp, &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "KVM" {
		t.Errorf("text = %q", s)
	}
	if !body.closed {
		t.Error("body not closed")
	}

	resp, _ = newResponse(200, "text/plain", "KVM")
	var n int
	if err := p.Parse(declare(signature.PlainText, ""), resp, &n); !errors.IsCode(err, errors.ErrCodeDecodeFailure) {
		t.Errorf("expected DECODE_FAILURE, got %v", err)
	}
}

func TestBooleanOn2xx(t *testing.T) {
	p := NewParsers(nil)
	tests := []struct {
		status int
		want   bool
	}{
		{200, true},
		{204, true},
		{299, true},
		{302, false},
	}
	for _, tt := range tests {
		resp, body := newResponse(tt.status, "", "ignored")
		got := !tt.want
		if err := p.Parse(declare(signature.BooleanOn2xx, ""), resp, &got); err != nil {
			t.Fatalf("status %d: unexpected error: %v", tt.status, err)
		}
		if got != tt.want {
			t.Errorf("status %d: got %v, want %v", tt.status, got, tt.want)
		}
		if !body.closed {
			t.Errorf("status %d: body not closed", tt.status)
		}
	}
}

func TestReleaseOnly_ClosesBody(t *testing.T) {
	p := NewParsers(nil)
	resp, body := newResponse(204, "", "leftover")

	if err := p.Parse(declare(signature.ReleaseOnly, ""), resp, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !body.closed {
		t.Error("body not closed")
	}
}

func TestStream_EventStream(t *testing.T) {
	p := NewParsers(nil)
	resp, body := newResponse(200, "text/event-stream", "event: state\ndata: MANAGED\n\ndata: done\n\n")

	var events []sse.Event
	if err := p.Parse(declare(signature.StreamDecode, "text/event-stream"), resp, &events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].Event != "state" || events[0].Data != "MANAGED" || events[1].Data != "done" {
		t.Errorf("events = %+v", events)
	}
	if !body.closed {
		t.Error("body not closed")
	}
}

func TestStream_LineDelimitedHandler(t *testing.T) {
	p := NewParsers(nil)
	resp, _ := newResponse(200, "application/x-ndjson", "{\"a\":1}\n\n{\"a\":2}\n")

	var seen []string
	handler := func(ev sse.Event) error {
		seen = append(seen, ev.Data)
		return nil
	}
	if err := p.Parse(declare(signature.StreamDecode, "application/x-ndjson"), resp, handler); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 2 || seen[1] != `{"a":2}` {
		t.Errorf("seen = %v", seen)
	}
}
