// Package errors provides the error taxonomy shared by every restwire
// package: AppError with machine-readable codes, constructors for the
// invocation failures (unknown operation, argument binding, encode/decode),
// and DomainError, the reclassified form of a remote 4xx response.
package errors
