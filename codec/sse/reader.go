// Package sse reads event-style response bodies: Server-Sent Events
// (text/event-stream) and newline-delimited records (application/x-ndjson).
package sse

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// Event is one decoded record. Data lines of a multi-line event are joined
// with "\n". Line-delimited streams only fill Data.
type Event struct {
	Event string
	Data  string
	ID    string
	// Retry is the reconnection delay the server asked for, or zero.
	Retry time.Duration
}

// Reader yields events until io.EOF.
type Reader interface {
	Next() (*Event, error)
	Close() error
}

// stream is the scanner and body every reader shares.
type stream struct {
	scanner *bufio.Scanner
	body    io.ReadCloser
}

func newStream(body io.ReadCloser) stream {
	return stream{scanner: bufio.NewScanner(body), body: body}
}

func (s *stream) Close() error { return s.body.Close() }

// end reports the scanner's error, or io.EOF for a clean end of stream.
func (s *stream) end() error {
	if err := s.scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}

type eventReader struct{ stream }

// NewReader reads text/event-stream framing from body.
func NewReader(body io.ReadCloser) Reader {
	return &eventReader{newStream(body)}
}

// Next dispatches on the blank line closing an event. Events without data
// are dropped, as are comment lines starting with ':'.
func (r *eventReader) Next() (*Event, error) {
	var (
		ev   Event
		data strings.Builder
		seen bool
	)
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			if seen {
				ev.Data = data.String()
				return &ev, nil
			}
			continue
		}
		if line[0] == ':' {
			continue
		}

		field, value := parseLine(line)
		switch field {
		case "data":
			if seen {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			seen = true
		case "event":
			ev.Event = value
		case "id":
			ev.ID = value
		case "retry":
			if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
				ev.Retry = time.Duration(ms) * time.Millisecond
			}
		}
	}
	if seen && r.scanner.Err() == nil {
		ev.Data = data.String()
		return &ev, nil
	}
	return nil, r.end()
}

type lineReader struct{ stream }

// NewLineReader yields one event per non-blank line of body.
func NewLineReader(body io.ReadCloser) Reader {
	return &lineReader{newStream(body)}
}

func (r *lineReader) Next() (*Event, error) {
	for r.scanner.Scan() {
		if line := strings.TrimSpace(r.scanner.Text()); line != "" {
			return &Event{Data: line}, nil
		}
	}
	return nil, r.end()
}

// ReadAll drains r and closes it.
func ReadAll(r Reader) ([]Event, error) {
	defer func() { _ = r.Close() }()
	var events []Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, *ev)
	}
}

// parseLine splits "field: value", dropping one leading space from value.
func parseLine(line string) (field, value string) {
	field, value, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return field, strings.TrimPrefix(value, " ")
}
