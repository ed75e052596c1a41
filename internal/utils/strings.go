package utils

import (
	"strings"
)

// TrimOrEmpty trims surrounding whitespace from user input.
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// SameText compares two values the way the store's LOWER(a) = LOWER(b) does.
func SameText(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}

// SafeFilenamePart makes s usable inside a Content-Disposition filename.
func SafeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
