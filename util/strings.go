package util

import "strings"

// Coalesce returns the first non-zero value.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// MaskSecret keeps the first visible characters of s and masks the rest.
// Values no longer than visible are masked entirely.
func MaskSecret(s string, visible int) string {
	if len(s) <= visible {
		return "***"
	}
	return s[:visible] + "***"
}

// LastSegment returns the last non-empty "/" separated segment of s, e.g.
// "7" for "http://host/api/racks/7/".
func LastSegment(s string) (string, bool) {
	s = strings.TrimRight(s, "/")
	i := strings.LastIndexByte(s, '/')
	seg := s[i+1:]
	return seg, seg != ""
}
