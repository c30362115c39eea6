// Package component defines the lifecycle contract shared by the HTTP
// transport and the rest client, and a Registry that starts them in order.
package component
