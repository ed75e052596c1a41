package utils

import (
	"fmt"
	"strings"
	"time"
)

const layoutClock = "15:04:05"

// HourBoundary renders hour as the "HH:00:00" departure boundary.
func HourBoundary(hour int) string {
	return fmt.Sprintf("%02d:00:00", hour)
}

// ParseClock parses "HH:MM:SS" into the offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(layoutClock, strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// ClockHM trims "HH:MM:SS" down to "HH:MM" for compact output.
func ClockHM(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 5 {
		return v[:5]
	}
	return v
}
