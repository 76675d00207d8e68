package utils

import "strings"

// CleanName trims the surrounding whitespace OCR capture tends to leave on
// extracted bill names. Inner characters are kept exactly as stored.
func CleanName(s string) string {
	return strings.TrimSpace(s)
}
