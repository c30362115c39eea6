// Package util holds small generic helpers shared by the transport and the
// typed clients: pointer helpers for optional fields, size parsing and
// secret masking for logs.
package util
