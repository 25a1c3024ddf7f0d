package aggregator

import (
	"sort"

	"interview-insights-go/internal/assembler"
	"interview-insights-go/internal/classifier"
	"interview-insights-go/internal/types"
)

// Summary condenses one interview's records.
type Summary struct {
	Segments         int                     `json:"segments"`
	TotalSeconds     float64                 `json:"total_seconds"`
	IntervieweeShare float64                 `json:"interviewee_share"`
	AreaCounts       map[string]int          `json:"area_counts"`
	AreaNames        map[string]string       `json:"area_names"`
	SentimentCounts  map[types.Sentiment]int `json:"sentiment_counts"`
	SpeakerCounts    map[string]int          `json:"speaker_counts"`
	Companies        map[string]int          `json:"companies"`
	DominantArea     string                  `json:"dominant_area"`
	UrgentShare      float64                 `json:"urgent_share"`
	PositiveShare    float64                 `json:"positive_share"`
}

// Aggregate summarizes records. Shares and the dominant area only look at
// interviewee statements; interviewer questions would skew them.
func Aggregate(records []types.InsightRecord) Summary {
	s := Summary{
		Segments:        len(records),
		AreaCounts:      map[string]int{},
		AreaNames:       map[string]string{},
		SentimentCounts: map[types.Sentiment]int{},
		SpeakerCounts:   map[string]int{},
		Companies:       map[string]int{},
		DominantArea:    classifier.DefaultAreaCode,
	}
	interviewee := types.Interviewee.Label()
	var talk, total float64
	var answers, urgent, positive int
	intervieweeAreas := map[string]int{}

	for _, r := range records {
		d, err := assembler.ParseTimestamp(r.Duration)
		if err == nil {
			total += d
		}
		s.AreaCounts[r.AreaCode]++
		s.AreaNames[r.AreaCode] = r.AreaName
		s.SentimentCounts[r.Sentiment]++
		s.SpeakerCounts[r.Speaker]++
		if r.SubjectCompany != "" && r.SubjectCompany != classifier.UnknownCompany {
			s.Companies[r.SubjectCompany]++
		}
		if r.Speaker != interviewee {
			continue
		}
		talk += d
		answers++
		switch r.Sentiment {
		case types.SentimentUrgent:
			urgent++
		case types.SentimentPositive:
			positive++
		}
		if r.AreaCode != classifier.DefaultAreaCode {
			intervieweeAreas[r.AreaCode]++
		}
	}

	s.TotalSeconds = total
	if total > 0 {
		s.IntervieweeShare = talk / total
	}
	if answers > 0 {
		s.UrgentShare = float64(urgent) / float64(answers)
		s.PositiveShare = float64(positive) / float64(answers)
	}
	if top := rank(intervieweeAreas); len(top) > 0 {
		s.DominantArea = top[0]
	}
	return s
}

// rank orders codes by count, ties by code.
func rank(counts map[string]int) []string {
	codes := make([]string, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		if counts[codes[i]] != counts[codes[j]] {
			return counts[codes[i]] > counts[codes[j]]
		}
		return codes[i] < codes[j]
	})
	return codes
}
