package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTag canonicalizes a tag value before it is stored: surrounding
// whitespace is trimmed and the text is converted to Unicode NFC so composed
// and decomposed spellings of the same name group together.
func NormalizeTag(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return norm.NFC.String(value)
}
