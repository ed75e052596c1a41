package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTicketPrice strips prefix from a stored ticket price such as
// "INR 450.00" and returns the amount in paise (hundredths).
func ParseTicketPrice(raw, prefix string) (int64, error) {
	s := strings.TrimSpace(raw)
	if p := strings.TrimSpace(prefix); p != "" {
		if !strings.HasPrefix(s, p) {
			return 0, fmt.Errorf("ticket price %q: missing prefix %q", raw, p)
		}
		s = strings.TrimSpace(strings.TrimPrefix(s, p))
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("ticket price %q: empty amount", raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("ticket price %q: %w", raw, err)
	}
	if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("ticket price %q: out of range", raw)
	}
	return int64(math.Round(v * 100)), nil
}

// FormatTicketPrice renders paise back into the stored "INR 450.00" form.
func FormatTicketPrice(paise int64, prefix string) string {
	return fmt.Sprintf("%s%d.%02d", prefix, paise/100, paise%100)
}
