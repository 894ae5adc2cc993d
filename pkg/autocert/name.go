package autocert

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Characters after which the next letter starts a new word, besides whitespace.
const openingChars = "\"'([{"

// Byte order mark, counted as whitespace when trimming and splitting words
const zeroWidthNoBreakSpace = '\uFEFF'

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == zeroWidthNoBreakSpace
}

func isWordBoundary(r rune) bool {
	return isSpace(r) || strings.ContainsRune(openingChars, r)
}

// Capitalize uppercases the first letter of every word. A word starts at the
// beginning of the string or right after whitespace or an opening quote/bracket,
// so "o'brien" becomes "O'Brien". When lower is true the string is lowercased
// first, otherwise the case of the remaining letters is kept as typed.
// Full case mapping applies to the first letter, "ß" turns into "SS".
func Capitalize(s string, lower bool) string {
	if lower {
		s = cases.Lower(language.Und).String(s)
	}
	upper := cases.Upper(language.Und)

	var sb strings.Builder
	sb.Grow(len(s))

	atBoundary := true
	for _, r := range s {
		if isWordBoundary(r) {
			atBoundary = true
			sb.WriteRune(r)
			continue
		}

		if atBoundary {
			atBoundary = false
			sb.WriteString(upper.String(string(r)))
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// NormalizeNames trims and capitalizes every raw name and drops the ones that
// end up empty. Order and duplicates are preserved.
func NormalizeNames(raw []string) ([]string, error) {
	names := make([]string, 0, len(raw))
	for _, name := range raw {
		name = Capitalize(strings.TrimFunc(name, isSpace), false)
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, ErrNoValidInput
	}

	return names, nil
}
