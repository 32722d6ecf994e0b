package timer

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ParseField reads a non-negative integer from a user-editable field.
// Leading digits are honored ("12abc" is 12); missing, signed or invalid input is 0.
func ParseField(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow only
		return 0
	}
	return v
}

// ParseFields combines hours, minutes and seconds fields into a duration
func ParseFields(hours, minutes, seconds string) time.Duration {
	return FieldsDuration(ParseField(hours), ParseField(minutes), ParseField(seconds))
}

// FieldsDuration converts field values to a duration, saturating instead of overflowing
func FieldsDuration(hours, minutes, seconds int) time.Duration {
	total := float64(hours)*3600 + float64(minutes)*60 + float64(seconds)
	if total <= 0 {
		return 0
	}
	if total >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

// SplitDuration returns the whole hours, minutes and seconds of d, truncating fractions
func SplitDuration(d time.Duration) (hours, minutes, seconds int) {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return int(total / 3600), int(total % 3600 / 60), int(total % 60)
}

// FormatRemaining renders d as zero-padded HH:MM:SS, rounding partial seconds up.
// Hours are not wrapped: 25h is "25:00:00".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	// Saturated durations truncate instead of overflowing
	if d%time.Second != 0 && d <= math.MaxInt64-time.Second {
		d = d.Truncate(time.Second) + time.Second
	}
	h, m, s := SplitDuration(d)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
