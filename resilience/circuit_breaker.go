package resilience

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed lets exchanges through and counts consecutive failures.
	StateClosed State = iota
	// StateOpen fails fast until the timeout elapses.
	StateOpen
	// StateHalfOpen admits a limited number of probe exchanges.
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned by Execute while the circuit rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig configures a circuit breaker.
type CircuitBreakerConfig struct {
	// Name labels the breaker in logs and metrics.
	Name string `yaml:"name" mapstructure:"name"`
	// MaxFailures is the consecutive failure count that opens the circuit.
	MaxFailures int `yaml:"max_failures" mapstructure:"max_failures" validate:"gte=0"`
	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// HalfOpenMaxCalls is the number of probes, and of probe successes
	// required to close again.
	HalfOpenMaxCalls int `yaml:"half_open_max_calls" mapstructure:"half_open_max_calls" validate:"gte=0"`
	// OnStateChange is called on every transition, with the lock held.
	OnStateChange func(name string, from, to State) `yaml:"-" mapstructure:"-"`
	// Clock overrides time.Now.
	Clock func() time.Time `yaml:"-" mapstructure:"-"`
}

// DefaultCircuitBreakerConfig opens after five failures for thirty seconds.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxFailures:      5,
		Timeout:          30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// Validate checks the numeric bounds.
func (c *CircuitBreakerConfig) Validate() error {
	if c.MaxFailures < 0 {
		return fmt.Errorf("circuit_breaker.max_failures must be >= 0 (got %d)", c.MaxFailures)
	}
	if c.HalfOpenMaxCalls < 0 {
		return fmt.Errorf("circuit_breaker.half_open_max_calls must be >= 0 (got %d)", c.HalfOpenMaxCalls)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("circuit_breaker.timeout must be >= 0 (got %s)", c.Timeout)
	}
	return nil
}

// CircuitBreaker fails fast while a remote endpoint keeps failing.
//
//   - Closed: exchanges pass; MaxFailures consecutive failures open it.
//   - Open: Execute returns ErrCircuitOpen until Timeout has elapsed.
//   - Half-open: HalfOpenMaxCalls probes run; a failure reopens, enough
//     successes close.
type CircuitBreaker struct {
	config CircuitBreakerConfig
	now    func() time.Time

	mu            sync.Mutex
	state         State
	failures      int
	successes     int
	openedAt      time.Time
	halfOpenCalls int
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}
	now := config.Clock
	if now == nil {
		now = time.Now
	}
	return &CircuitBreaker{config: config, now: now, state: StateClosed}
}

// Execute runs fn unless the circuit rejects it. A non-nil error from fn
// counts as a failure.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}
	err := fn()
	cb.record(err)
	return err
}

// Name returns the configured name.
func (cb *CircuitBreaker) Name() string { return cb.config.Name }

// State returns the current state, promoting an expired open circuit to half-open.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.current()
}

// Failures returns the consecutive failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// Reset forces the circuit closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transition(StateClosed)
	cb.failures = 0
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.current() {
	case StateClosed:
		return true
	case StateHalfOpen:
		if cb.halfOpenCalls < cb.config.HalfOpenMaxCalls {
			cb.halfOpenCalls++
			return true
		}
	}
	return false
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state := cb.current()
	if err == nil {
		switch state {
		case StateClosed:
			cb.failures = 0
		case StateHalfOpen:
			cb.successes++
			if cb.successes >= cb.config.HalfOpenMaxCalls {
				cb.transition(StateClosed)
			}
		}
		return
	}

	cb.failures++
	switch state {
	case StateClosed:
		if cb.failures >= cb.config.MaxFailures {
			cb.open()
		}
	case StateHalfOpen:
		cb.open()
	}
}

func (cb *CircuitBreaker) open() {
	cb.openedAt = cb.now()
	cb.transition(StateOpen)
}

// current must be called with mu held.
func (cb *CircuitBreaker) current() State {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.config.Timeout {
		cb.transition(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) transition(to State) {
	if cb.state == to {
		return
	}
	from := cb.state
	cb.state = to
	cb.successes = 0
	cb.halfOpenCalls = 0
	if to == StateClosed {
		cb.failures = 0
	}
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}
