package util //nolint:revive // package name util hosts shared formatting helpers used in notification text

import "time"

// FormatElapsed formats a run duration for display in notification bodies.
// Returns "n/a" for zero or negative durations, truncates to seconds since
// renewal runs take minutes and sub-second precision is noise.
func FormatElapsed(d time.Duration) string {
	switch {
	case d <= 0:
		return "n/a"
	case d < time.Second:
		return d.Truncate(time.Millisecond).String()
	default:
		return d.Truncate(time.Second).String()
	}
}
