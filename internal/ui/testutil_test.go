package ui

import (
	"regexp"
	"strings"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// stripANSI removes terminal escape sequences so assertions can match text.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// countLines returns the number of lines in s.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
