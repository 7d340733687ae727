package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTimeTo12Hour converts a 24-hour "HH:MM" string to its 12-hour
// display form, e.g. "14:05" -> "2:05 PM". The order form stores pickup
// time in 24-hour format and converts exactly once, at submission.
func FormatTimeTo12Hour(time24 string) (string, error) {
	parts := strings.Split(time24, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid 24-hour time %q", time24)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return "", fmt.Errorf("invalid hour in %q", time24)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return "", fmt.Errorf("invalid minutes in %q", time24)
	}

	ampm := "AM"
	if hours >= 12 {
		ampm = "PM"
	}
	hour12 := hours % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minutes, ampm), nil
}

// IsDigitsOnly reports whether s is non-empty and consists solely of ASCII
// digits.
func IsDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
