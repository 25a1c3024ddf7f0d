// Package classifier tags text with business areas, a sentiment code and the
// company the text is about, using fixed keyword tables.
package classifier

import (
	"math"
	"sort"
	"strings"

	"interview-insights-go/internal/textutil"
	"interview-insights-go/internal/types"
)

const (
	maxAreas          = 3
	baseConfidence    = 0.4
	perHitConfidence  = 0.15
	maxConfidence     = 0.95
	defaultConfidence = 0.5
)

type Classifier struct {
	areas    []types.BusinessArea
	fallback types.BusinessArea
}

// New returns a Classifier over the built-in reference tables.
func New() *Classifier {
	c := &Classifier{areas: businessAreas}
	c.fallback, _ = c.Lookup(DefaultAreaCode)
	return c
}

// Lookup finds an area by code.
func (c *Classifier) Lookup(code string) (types.BusinessArea, bool) {
	for _, a := range c.areas {
		if a.Code == code {
			return a, true
		}
	}
	return types.BusinessArea{}, false
}

// Reference returns the taxonomy. Callers must not modify it.
func (c *Classifier) Reference() []types.BusinessArea { return c.areas }

// Classify runs area ranking, sentiment and company detection on text.
func (c *Classifier) Classify(text string) types.ClassificationResult {
	lower := textutil.Lower(text)
	return types.ClassificationResult{
		RankedAreas:    c.rankAreas(lower),
		Sentiment:      sentimentOf(lower),
		SubjectCompany: companyOf(lower),
	}
}

// Areas ranks the business areas mentioned in text, best first. The result
// holds one to three entries; with no keyword hits it is the default area.
func (c *Classifier) Areas(text string) []types.AreaScore {
	return c.rankAreas(textutil.Lower(text))
}

// Hits counts keyword occurrences of one area in already-lowercased text.
func Hits(area types.BusinessArea, lower string) int {
	n := 0
	for _, kw := range area.Keywords {
		n += textutil.CountWord(lower, kw)
	}
	return n
}

func (c *Classifier) rankAreas(lower string) []types.AreaScore {
	var scored []types.AreaScore
	for _, a := range c.areas {
		hits := Hits(a, lower)
		if hits == 0 {
			continue
		}
		scored = append(scored, types.AreaScore{
			Code:       a.Code,
			Name:       a.DisplayName,
			Confidence: math.Min(maxConfidence, baseConfidence+perHitConfidence*float64(hits)),
			Priority:   a.Priority,
			Hits:       hits,
		})
	}
	if len(scored) == 0 {
		return []types.AreaScore{{
			Code:       c.fallback.Code,
			Name:       c.fallback.DisplayName,
			Confidence: defaultConfidence,
			Priority:   c.fallback.Priority,
		}}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Hits != scored[j].Hits {
			return scored[i].Hits > scored[j].Hits
		}
		return scored[i].Priority < scored[j].Priority
	})
	if len(scored) > maxAreas {
		scored = scored[:maxAreas]
	}
	return scored
}

// Sentiment scores text against the positive, opportunity and urgency sets.
func (c *Classifier) Sentiment(text string) types.Sentiment {
	return sentimentOf(textutil.Lower(text))
}

// sentimentOf counts how many keywords of each set are present. Only a strict
// winner is reported; ties and no signal both mean opportunity.
func sentimentOf(lower string) types.Sentiment {
	best, bestScore, tied := types.SentimentOpportunity, 0, false
	for _, set := range sentimentSets {
		score := 0
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = set.code, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}
	if tied || bestScore == 0 {
		return types.SentimentOpportunity
	}
	return best
}

// Company returns the code of the first listed company mentioned in text, or
// UnknownCompany.
func (c *Classifier) Company(text string) string {
	return companyOf(textutil.Lower(text))
}

func companyOf(lower string) string {
	for _, ck := range companyKeywords {
		if strings.Contains(lower, ck.keyword) {
			return ck.code
		}
	}
	return UnknownCompany
}
