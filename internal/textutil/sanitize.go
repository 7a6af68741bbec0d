package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a single path
// component. Slashes, backslashes, colons, and asterisks become dashes; other
// unsafe characters are removed. The result is trimmed of surrounding
// whitespace and trailing dots.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(fileNameReplacer.Replace(name)), ".")
}
