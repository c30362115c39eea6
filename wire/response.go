package wire

import (
	"io"
	"mime"
	"strconv"
)

// maxErrorBody bounds how much of a failed response is kept for classification.
const maxErrorBody = 1 << 20

// Response is the transport's answer to a Request. The body is a stream
// owned by the response; whoever consumes it must Close it.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers Headers
	// Body is the response body stream. May be nil.
	Body io.ReadCloser
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the media type of the body without parameters.
func (r *Response) ContentType() string {
	ct := r.Headers.Get(HeaderContentType)
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mt
}

// Release drains and closes the body so the connection can be reused.
func (r *Response) Release() error {
	if r.Body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return r.Body.Close()
}

// ReadAll reads and closes the body.
func (r *Response) ReadAll() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer func() { _ = r.Body.Close() }()
	return io.ReadAll(r.Body)
}

// Classify drains a non-2xx response into an *Error. It returns nil for 2xx
// responses and leaves their body untouched.
func (r *Response) Classify() *Error {
	if r.IsSuccess() {
		return nil
	}
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(r.Body, maxErrorBody))
		_ = r.Release()
	}
	e := ClassifyStatusCode(r.StatusCode, body)
	e.ContentType = r.ContentType()
	return e
}

// Attributes describes the response for logs, spans and metric labels.
func (r *Response) Attributes() map[string]string {
	if r == nil {
		return nil
	}
	return map[string]string{"status_code": strconv.Itoa(r.StatusCode)}
}
