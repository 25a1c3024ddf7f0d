package transform

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"interview-insights-go/internal/textutil"
)

var (
	commaBeforeEnd  = regexp.MustCompile(`[,;:]+([.!?])`)
	doubledTerminal = regexp.MustCompile(`[.!?…]{2,}|…`)
)

// cleanup guarantees single spacing, no dangling punctuation at either edge
// and a final sentence terminator. Text without any letter or digit becomes "".
func cleanup(s string) string {
	s = tidy(s)
	s = commaBeforeEnd.ReplaceAllString(s, "$1")
	s = doubledTerminal.ReplaceAllStringFunc(s, func(run string) string {
		r, _ := utf8.DecodeRuneInString(run)
		if r == '…' {
			return "."
		}
		return string(r)
	})
	s = textutil.CollapseSpaces(strings.TrimRight(s, " ,;:-"))
	if !strings.ContainsFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) }) {
		return ""
	}
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return capitalize(s)
}

// capitalize upper-cases the first letter, skipping opening ¿ and ¡.
func capitalize(s string) string {
	for i, r := range s {
		if r == '¿' || r == '¡' {
			continue
		}
		if unicode.IsLetter(r) {
			return s[:i] + string(unicode.ToUpper(r)) + s[i+utf8.RuneLen(r):]
		}
		return s
	}
	return s
}
