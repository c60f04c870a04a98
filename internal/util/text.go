package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SanitizeText prepares extracted document text for chunking: invalid UTF-8
// and NUL bytes are dropped and the result is NFC-normalized, so the same
// name typed with combining marks or precomposed characters yields the same
// entity label.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	sanitized = strings.ReplaceAll(sanitized, "\x00", "")
	return norm.NFC.String(sanitized)
}
