// Package version reports the build of the library and derives the default
// User-Agent sent by the HTTP transport.
//
//	go build -ldflags "-X github.com/kbukum/restwire/version.Version=1.0.0"
package version
