// Package assembler merges a segment, its rewritten text, its classification
// and the interview metadata into one output record.
package assembler

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"interview-insights-go/internal/textutil"
	"interview-insights-go/internal/types"
)

// DefaultInterviewerTag is the raw speaker tag the transcription service gives
// the first voice it hears, which is the interviewer in our recordings.
const DefaultInterviewerTag = "speaker_0"

var spaceBeforePunct = regexp.MustCompile(`\s+([,.;:!?])`)

type Assembler struct {
	interviewerTag string
}

// New returns an Assembler. An empty tag means DefaultInterviewerTag.
func New(interviewerTag string) *Assembler {
	if interviewerTag == "" {
		interviewerTag = DefaultInterviewerTag
	}
	return &Assembler{interviewerTag: interviewerTag}
}

// Role maps a raw speaker tag to interviewer or interviewee.
func (a *Assembler) Role(tag string) types.SpeakerRole {
	if tag == a.interviewerTag {
		return types.Interviewer
	}
	return types.Interviewee
}

// Assemble builds the record for the seq-th segment (1-based).
func (a *Assembler) Assemble(seq int, seg types.Segment, transformed string, cls types.ClassificationResult, meta types.Metadata) types.InsightRecord {
	primary := cls.Primary()
	codes := make([]string, 0, len(cls.RankedAreas))
	names := make([]string, 0, len(cls.RankedAreas))
	for _, s := range cls.RankedAreas {
		codes = append(codes, s.Code)
		names = append(names, s.Name)
	}
	return types.InsightRecord{
		Index:           seq,
		Start:           FormatTimestamp(seg.StartTime),
		End:             FormatTimestamp(seg.EndTime),
		Duration:        FormatTimestamp(seg.Duration()),
		Speaker:         a.Role(seg.Speaker).Label(),
		OriginalText:    CleanText(seg.Text()),
		TransformedText: transformed,
		AreaCode:        primary.Code,
		AreaName:        primary.Name,
		AreaCodes:       strings.Join(codes, ":"),
		AreaNames:       strings.Join(names, "|"),
		Sentiment:       cls.Sentiment,
		SubjectCompany:  cls.SubjectCompany,
		ConfidencePct:   types.Percent(primary.Confidence),
		Metadata:        meta,
	}
}

// FormatTimestamp renders seconds as M:SS.mmm. Minutes are not wrapped into
// hours. Negative input renders as zero.
func FormatTimestamp(sec float64) string {
	ms := int64(math.Round(sec * 1000))
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, (ms%60000)/1000, ms%1000)
}

// ParseTimestamp reverses FormatTimestamp.
func ParseTimestamp(ts string) (float64, error) {
	var m, s, ms int
	if _, err := fmt.Sscanf(ts, "%d:%02d.%03d", &m, &s, &ms); err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	return float64(m*60+s) + float64(ms)/1000, nil
}

// CleanText normalizes whitespace and spacing around punctuation without
// rewriting any words.
func CleanText(s string) string {
	s = textutil.CollapseSpaces(s)
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
