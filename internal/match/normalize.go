package match

import (
	"strings"
	"unicode"
)

// NormalizeText trims and lower-cases a cell value.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StripSpaces removes every whitespace character, including non-breaking spaces.
func StripSpaces(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// NormalizeDatatype lower-cases and trims a datatype, then replaces it with its
// canonical spelling when the whole value is a key of aliases.
func NormalizeDatatype(s string, aliases map[string]string) string {
	dt := NormalizeText(s)
	if canonical, ok := aliases[dt]; ok {
		return canonical
	}

	return dt
}
