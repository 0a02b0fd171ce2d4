// Package timefmt converts between minute counts and the short duration
// strings used throughout the app ("2h 30m", "45m").
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts a duration string into total minutes. Accepted forms are
// "<h>h <m>m", "<h>h" and "<m>m". Unparsable or empty input yields 0.
func Parse(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	total := 0
	if i := strings.Index(s, "h"); i >= 0 {
		h, err := strconv.Atoi(strings.TrimSpace(s[:i]))
		if err != nil {
			return 0
		}
		total = h * 60
		s = strings.TrimSpace(s[i+1:])
		if s == "" {
			return total
		}
	}

	s = strings.TrimSuffix(s, "m")
	m, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return total + m
}

// Format renders a minute count as "<h>h <m>m" for an hour or more, "<m>m"
// otherwise. Negative input is clamped to 0.
func Format(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
