// Package token turns raw recognized text into index keys.
//
// A key is the recognized word with sentence punctuation removed, trailing
// joiners (- ' # :) trimmed, upper-cased, and passed through a small table of
// known OCR misreads. An empty key means the token is not indexable.
package token

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// punctuation matches sentence punctuation anywhere and joiners at the very end.
var punctuation = regexp.MustCompile(`[.,;!?"]|[-'#:]$`)

var upper = cases.Upper(language.Und)

// autocorrect maps known OCR misreads to the intended key.
var autocorrect = map[string]string{
	"NFORMATION": "INFORMATION",
	"NG":         "ING",
	"NGS":        "INGS",
	"KUIN":       "KUN",
	"KLIN":       "KUN",
}

// mustHyphenate lists continuations that only ever appear joined by a hyphen (honorifics).
var mustHyphenate = map[string]struct{}{
	"SAMA":   {},
	"SAN":    {},
	"SENSEI": {},
	"KUN":    {},
	"CHAN":   {},
	"SENPAI": {},
	"BO":     {},
}

// neverHyphenate lists continuation morphemes that never keep a hyphen.
var neverHyphenate = map[string]struct{}{
	"ING":   {},
	"INGS":  {},
	"NING":  {},
	"NINGS": {},
}

// Normalize converts a raw token into an index key.
func Normalize(raw string) string {
	return Autocorrect(StripPunctuation(raw))
}

// StripPunctuation removes punctuation (two passes, so stacked marks like "word.-"
// are fully trimmed) and upper-cases the result. No autocorrection is applied.
func StripPunctuation(raw string) string {
	s := punctuation.ReplaceAllString(raw, "")
	s = punctuation.ReplaceAllString(s, "")
	return upper.String(s)
}

// Autocorrect substitutes known OCR misreads; anything else is returned unchanged.
func Autocorrect(s string) string {
	if fixed, ok := autocorrect[s]; ok {
		return fixed
	}
	return s
}

// TrimHyphens removes every hyphen from s.
func TrimHyphens(s string) string {
	return strings.ReplaceAll(s, "-", "")
}

// MustHyphenate reports whether key is a continuation that keeps its hyphen.
func MustHyphenate(key string) bool {
	_, ok := mustHyphenate[key]
	return ok
}

// NeverHyphenate reports whether key is a continuation that never keeps a hyphen.
func NeverHyphenate(key string) bool {
	_, ok := neverHyphenate[key]
	return ok
}
