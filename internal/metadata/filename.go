// Package metadata derives interview metadata from recording filenames of the
// form <region>_<program>_<year>_<interviewee>[-<id>]_<company>[-<id>].<ext>.
package metadata

import (
	"path"
	"strings"
	"unicode"

	"interview-insights-go/internal/types"
)

// FromFilename parses name, which may be a path or URL. Missing parts stay
// empty. Underscores past the fifth field belong to the company name.
func FromFilename(name string) types.Metadata {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return types.Metadata{}
	}

	parts := strings.SplitN(base, "_", 5)
	field := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}

	var m types.Metadata
	m.Region = field(0)
	m.Program = field(1)
	m.Year = field(2)
	m.IntervieweeName, m.IntervieweeID = splitID(field(3))
	m.CompanyName, m.CompanyID = splitID(field(4))
	return m
}

// splitID separates a trailing -<digits> identifier. Hyphens inside names
// ("maria-jose") are left alone.
func splitID(s string) (name, id string) {
	i := strings.LastIndex(s, "-")
	if i <= 0 || i == len(s)-1 {
		return s, ""
	}
	for _, r := range s[i+1:] {
		if !unicode.IsDigit(r) {
			return s, ""
		}
	}
	return s[:i], s[i+1:]
}
