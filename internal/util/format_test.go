package util

import (
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "n/a"},
		{-time.Second, "n/a"},
		{250 * time.Millisecond, "250ms"},
		{3*time.Minute + 12*time.Second + 400*time.Millisecond, "3m12s"},
		{time.Hour, "1h0m0s"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.in); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
