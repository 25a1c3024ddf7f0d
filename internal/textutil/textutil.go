// Package textutil holds the Unicode-aware matching helpers shared by the
// transformer and classifier. RE2's \b only understands ASCII word characters,
// which breaks on Spanish text ("sé", "compañía"), so boundaries are checked by hand.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var spaces = regexp.MustCompile(`\s+`)

// Lower folds s with Spanish casing rules. A Caser is not safe for concurrent
// use, so one is built per call.
func Lower(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

// CollapseSpaces trims s and reduces every whitespace run to one space.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Bounded reports whether s[start:end] is delimited by non-word runes or the
// string edges.
func Bounded(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			if first, _ := utf8.DecodeRuneInString(s[start:end]); isWordRune(first) {
				return false
			}
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			if last, _ := utf8.DecodeLastRuneInString(s[start:end]); isWordRune(last) {
				return false
			}
		}
	}
	return true
}

// ReplaceBounded replaces the matches of re that sit on word boundaries.
// tmpl is expanded like regexp.Expand ($1, ${name}).
func ReplaceBounded(re *regexp.Regexp, s, tmpl string) string {
	return ReplaceBoundedFunc(re, s, func(src string, m []int) string {
		return string(re.ExpandString(nil, tmpl, src, m))
	})
}

// ReplaceBoundedFunc is ReplaceBounded with a callback receiving the submatch
// indices. Returning the matched text unchanged leaves the match alone.
func ReplaceBoundedFunc(re *regexp.Regexp, s string, fn func(src string, m []int) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !Bounded(s, m[0], m[1]) {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(fn(s, m))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// CountWord counts occurrences of phrase in text that sit on word boundaries.
// Both arguments are expected to be lowercased already. Occurrences may overlap.
func CountWord(text, phrase string) int {
	if phrase == "" {
		return 0
	}
	n := 0
	for i := 0; i+len(phrase) <= len(text); {
		j := strings.Index(text[i:], phrase)
		if j < 0 {
			break
		}
		start := i + j
		if Bounded(text, start, start+len(phrase)) {
			n++
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}
	return n
}

// ContainsWord reports whether phrase occurs in text on word boundaries.
func ContainsWord(text, phrase string) bool {
	return CountWord(text, phrase) > 0
}
