package transform

import (
	"regexp"
	"strings"

	"interview-insights-go/internal/textutil"
)

// Confirmation tags go first so "¿no?" is not split by the bare fillers.
var fillerRules = rules(
	`(?i)¿\s*(?:no|verdad|sí|si|cierto|me explico|me entiendes|sabes|ves)\s*\?`, " ",
	`(?i),\s*(?:no|verdad|cierto)\s*\?`, " ",
	`(?i)no sé`, " ",
	`(?i)o sea`, " ",
	`(?i)la verdad es que`, " ",
	`(?i)digamos`, " ",
	`(?i)como que`, " ",
	`(?i)(?:este|bueno|entonces|tipo|mira|oye)\s*,`, " ",
	`(?i)pues`, " ",
	`(?i)ok(?:ay)?`, " ",
	`(?i)(?:e+h+m*|e+m+|m{2,}h*|a+h+|u+h+m*|h+m+|aj[aá])`, " ",
)

var (
	truncatedWord = regexp.MustCompile(`\p{L}+-(?:\s|$)`)
	spaceBefore   = regexp.MustCompile(`\s+([,.;:!?])`)
	repeatedComma = regexp.MustCompile(`,(?:\s*,)+`)
	gluedComma    = regexp.MustCompile(`([,;:])(\p{L})`)
)

const edgeNoise = " \t\n,;:.-…"

func removeFillers(s string) string {
	s = applyRules(s, fillerRules)
	s = truncatedWord.ReplaceAllString(s, " ")
	s = collapseRepeats(strings.Fields(s))
	return tidy(s)
}

func normToken(tok string) string {
	return textutil.Lower(strings.Trim(tok, ",;:…"))
}

// collapseRepeats drops immediate repetitions of a word ("y y") or a two-word
// phrase ("lo que, lo que"). The later occurrence is kept so its trailing
// punctuation survives.
func collapseRepeats(tokens []string) string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if n := len(out); n > 0 && normToken(tok) != "" && normToken(out[n-1]) == normToken(tok) {
			out[n-1] = tok
			continue
		}
		out = append(out, tok)
		if n := len(out); n >= 4 &&
			normToken(out[n-4]) == normToken(out[n-2]) &&
			normToken(out[n-3]) == normToken(out[n-1]) {
			out = append(out[:n-4], out[n-2:]...)
		}
	}
	return strings.Join(out, " ")
}

// tidy collapses whitespace and trims punctuation left dangling by removals.
func tidy(s string) string {
	s = textutil.CollapseSpaces(s)
	s = spaceBefore.ReplaceAllString(s, "$1")
	s = repeatedComma.ReplaceAllString(s, ",")
	s = gluedComma.ReplaceAllString(s, "$1 $2")
	s = strings.TrimLeft(s, edgeNoise)
	s = strings.TrimRight(s, " \t\n,;:-")
	return s
}
