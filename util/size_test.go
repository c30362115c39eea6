package util

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10MB", 10 << 20},
		{"512KB", 512 << 10},
		{"512k", 512 << 10},
		{"2GB", 2 << 30},
		{"1 M", 1 << 20},
		{"100B", 100},
		{"4096", 4096},
		{"  10mb ", 10 << 20},
		{"", -1},
		{"lots", -1},
		{"-5MB", -1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseSize(tt.in, -1); got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
