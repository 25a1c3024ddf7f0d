// Package transform rewrites interviewee speech into professional register.
//
// The rewrite runs as six ordered phases. Each phase assumes the shape left by
// the previous one, so the order in Transform must not change:
//
//  1. filler removal
//  2. business phrase reconstruction
//  3. company-perspective integration (randomized, see Chooser)
//  4. professional vocabulary upgrade
//  5. product category bracketing
//  6. structural cleanup
package transform

import (
	"math/rand"
	"regexp"
	"sync"
	"time"

	"interview-insights-go/internal/textutil"
	"interview-insights-go/internal/types"
)

// Chooser picks one of n phrasing candidates. *rand.Rand satisfies it.
type Chooser interface {
	Intn(n int) int
}

type firstChooser struct{}

func (firstChooser) Intn(int) int { return 0 }

// FirstCandidate always selects the first phrasing, making output deterministic.
func FirstCandidate() Chooser { return firstChooser{} }

// Transformer rewrites spoken segment text into report prose. It is safe for
// concurrent use.
type Transformer struct {
	mu      sync.Mutex
	chooser Chooser
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithChooser sets the source of phrasing choices for the perspective phase.
func WithChooser(c Chooser) Option {
	return func(t *Transformer) { t.chooser = c }
}

// WithSeed makes the perspective phase reproducible.
func WithSeed(seed int64) Option {
	return WithChooser(rand.New(rand.NewSource(seed)))
}

// New returns a Transformer. Without options the perspective phase draws from
// a time-seeded source.
func New(opts ...Option) *Transformer {
	t := &Transformer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.chooser == nil {
		t.chooser = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return t
}

func (t *Transformer) pick(n int) int {
	if n <= 1 {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.chooser.Intn(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

// Transform rewrites text spoken by role. Interviewer text is returned as is.
func (t *Transformer) Transform(text string, role types.SpeakerRole, company string) string {
	if role == types.Interviewer {
		return text
	}
	s := removeFillers(text)
	s = reconstructBusiness(s)
	s = t.integratePerspective(s, company)
	s = upgradeVocabulary(s)
	s = bracketProducts(s)
	return cleanup(s)
}

type rule struct {
	re   *regexp.Regexp
	tmpl string
}

func rules(pairs ...string) []rule {
	out := make([]rule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, rule{re: regexp.MustCompile(pairs[i]), tmpl: pairs[i+1]})
	}
	return out
}

func applyRules(s string, rs []rule) string {
	for _, r := range rs {
		s = textutil.ReplaceBounded(r.re, s, r.tmpl)
	}
	return s
}
