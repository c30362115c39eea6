package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTemporary = errors.New("temporary")

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		cfg       RetryConfig
		failFirst int
		wantCalls int
		wantErr   bool
	}{
		{"first attempt", fastRetry(3), 0, 1, false},
		{"succeeds on third", fastRetry(3), 2, 3, false},
		{"exhausts attempts", fastRetry(3), 10, 3, true},
		{"single attempt", fastRetry(1), 10, 1, true},
		{"zero attempts defaults to three", RetryConfig{InitialBackoff: time.Millisecond}, 10, 3, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			got, err := Retry(context.Background(), tc.cfg, func() (string, error) {
				calls++
				if calls <= tc.failFirst {
					return "", errTemporary
				}
				return "ok", nil
			})
			if calls != tc.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tc.wantCalls)
			}
			if tc.wantErr {
				if !errors.Is(err, errTemporary) {
					t.Errorf("expected last error, got %v", err)
				}
				return
			}
			if err != nil || got != "ok" {
				t.Errorf("got %q, %v", got, err)
			}
		})
	}
}

func TestRetry_RetryIfStopsEarly(t *testing.T) {
	permanent := errors.New("conflict")
	cfg := fastRetry(5)
	cfg.RetryIf = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	_, err := Retry(context.Background(), cfg, func() (int, error) {
		calls++
		if calls == 2 {
			return 0, permanent
		}
		return 0, errTemporary
	})
	if !errors.Is(err, permanent) || calls != 2 {
		t.Fatalf("expected stop at permanent error after 2 calls, got %v after %d", err, calls)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	cfg := fastRetry(3)
	var attempts []int
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		if !errors.Is(err, errTemporary) || backoff <= 0 {
			t.Errorf("unexpected callback args %v %s", err, backoff)
		}
		attempts = append(attempts, attempt)
	}

	_ = RetryFunc(context.Background(), cfg, func() error { return errTemporary })
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("OnRetry attempts = %v, want [1 2]", attempts)
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{MaxAttempts: 5, InitialBackoff: time.Second}

	calls := 0
	_, err := Retry(ctx, cfg, func() (int, error) {
		calls++
		cancel()
		return 0, errTemporary
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	if DefaultRetryIf(context.Canceled) || DefaultRetryIf(context.DeadlineExceeded) {
		t.Error("context errors must not be retried")
	}
	if !DefaultRetryIf(errTemporary) {
		t.Error("ordinary errors are retried")
	}
}

func TestBackoff(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, BackoffFactor: 2}
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond, 800 * time.Millisecond, time.Second, time.Second}
	for i, w := range want {
		if got := Backoff(i+1, cfg); got != w {
			t.Errorf("Backoff(%d) = %s, want %s", i+1, got, w)
		}
	}

	cfg.Jitter = 0.5
	for range 50 {
		if got := Backoff(1, cfg); got < 50*time.Millisecond || got > 150*time.Millisecond {
			t.Fatalf("jittered backoff %s out of range", got)
		}
	}
}

func TestRetryConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RetryConfig
		wantErr bool
	}{
		{"defaults", DefaultRetryConfig(), false},
		{"negative attempts", RetryConfig{MaxAttempts: -1}, true},
		{"jitter above one", RetryConfig{Jitter: 1.5}, true},
		{"initial above max", RetryConfig{InitialBackoff: time.Second, MaxBackoff: time.Millisecond}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
