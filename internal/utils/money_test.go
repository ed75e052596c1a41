package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseTicketPrice(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"INR 450.00", 45000},
		{"INR 300", 30000},
		{"INR 2,000.50", 200050},
		{"  INR 99.99 ", 9999},
	}
	for _, tc := range cases {
		got, err := ParseTicketPrice(tc.raw, "INR ")
		if err != nil {
			t.Fatalf("ParseTicketPrice(%q) error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTicketPrice(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseTicketPriceRoundTrip(t *testing.T) {
	for _, raw := range []string{"INR 450.00", "INR 100.00", "INR 5000.00", "INR 1234.56"} {
		paise, err := ParseTicketPrice(raw, "INR ")
		if err != nil {
			t.Fatalf("ParseTicketPrice(%q) error: %v", raw, err)
		}
		if back := FormatTicketPrice(paise, "INR "); back != raw {
			t.Fatalf("round trip %q -> %d -> %q", raw, paise, back)
		}
	}
}

func TestParseTicketPriceRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "INR ", "USD 450.00", "INR abc", "INR -5"} {
		if _, err := ParseTicketPrice(raw, "INR "); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestHourBoundaryAndClock(t *testing.T) {
	if got := HourBoundary(7); got != "07:00:00" {
		t.Fatalf("HourBoundary(7) = %q", got)
	}
	d, err := ParseClock("19:30:15")
	if err != nil {
		t.Fatalf("ParseClock error: %v", err)
	}
	if d != 19*time.Hour+30*time.Minute+15*time.Second {
		t.Fatalf("ParseClock = %s", d)
	}
	if _, err := ParseClock("7pm"); err == nil {
		t.Fatalf("expected error for malformed clock")
	}
	if got := ClockHM("19:30:00"); got != "19:30" {
		t.Fatalf("ClockHM = %q", got)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := SafeFilenamePart("Bengaluru / Chennai"); got != "Bengaluru___Chennai" {
		t.Fatalf("SafeFilenamePart = %q", got)
	}
	if got := SafeFilenamePart("  "); got != "NA" {
		t.Fatalf("SafeFilenamePart blank = %q", got)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Writer: &buf, Level: "debug", Format: "json"})
	logger.Debug("hello", "module", "SEARCH")
	if !strings.Contains(buf.String(), `"module":"SEARCH"`) {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}
