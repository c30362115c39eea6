package filter

import (
	"context"
	"sync"
	"time"
)

// Session is a TokenSource that logs in lazily and caches the token until
// shortly before it expires. It is safe for concurrent use; concurrent
// callers share a single login.
type Session struct {
	login LoginFunc
	skew  time.Duration
	now   func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithExpirySkew renews tokens this long before they expire. Default 30s.
func WithExpirySkew(d time.Duration) SessionOption {
	return func(s *Session) { s.skew = d }
}

// WithClock overrides the session's time source.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a Session backed by login.
func NewSession(login LoginFunc, opts ...SessionOption) *Session {
	s := &Session{login: login, skew: 30 * time.Second, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token implements TokenSource.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && (s.expires.IsZero() || s.now().Add(s.skew).Before(s.expires)) {
		return s.token, nil
	}
	token, expires, err := s.login(ctx)
	if err != nil {
		return "", err
	}
	s.token, s.expires = token, expires
	return token, nil
}

// Invalidate drops the cached token so the next call logs in again.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.token, s.expires = "", time.Time{}
	s.mu.Unlock()
}
