package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed part of a client: its transport, or the
// client itself.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string
	// Start initializes the component.
	Start(ctx context.Context) error
	// Stop releases the component's resources.
	Stop(ctx context.Context) error
	// Health returns the current health of the component.
	Health(ctx context.Context) Health
}

// Description summarizes a component for startup output.
type Description struct {
	// Name is the display name. Empty means the component's Name().
	Name string
	// Type categorizes the component, e.g. "http-transport" or "rest-client".
	Type string
	// Details is a one-line configuration summary, e.g. "timeout=30s http2=true".
	Details string
}

// Describable is optionally implemented by Components to self-report.
type Describable interface {
	Describe() Description
}

// Worst returns the most severe status among hs; healthy when hs is empty.
func Worst(hs ...Health) HealthStatus {
	status := StatusHealthy
	for _, h := range hs {
		switch h.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}
