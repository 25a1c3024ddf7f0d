package types

import (
	"math"
	"strconv"
	"strings"
)

// WordToken is one timed, speaker-tagged word from the transcription service.
type WordToken struct {
	Text      string  `json:"text"`
	SpeakerID string  `json:"speaker_id"`
	StartSec  float64 `json:"start"`
	EndSec    float64 `json:"end"`
}

// Segment is a continuous run of words attributed to one speaker.
type Segment struct {
	Words     []WordToken `json:"words"`
	Speaker   string      `json:"speaker"`
	StartTime float64     `json:"start_time"`
	EndTime   float64     `json:"end_time"`
	Reason    BreakReason `json:"break_reason"`
}

func (s Segment) Duration() float64 { return s.EndTime - s.StartTime }

// Text joins the segment words with single spaces.
func (s Segment) Text() string {
	parts := make([]string, 0, len(s.Words))
	for _, w := range s.Words {
		if t := strings.TrimSpace(w.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// BreakReason records why the segmenter closed a segment.
type BreakReason string

const (
	BreakLongPause    BreakReason = "long_pause"
	BreakTopicChange  BreakReason = "topic_change"
	BreakSpeaker      BreakReason = "speaker_change"
	BreakMaxDuration  BreakReason = "max_duration"
	BreakSoftDuration BreakReason = "soft_duration"
	BreakEndOfStream  BreakReason = "end_of_stream"
)

type SpeakerRole int

const (
	Interviewer SpeakerRole = iota
	Interviewee
)

func (r SpeakerRole) Label() string {
	if r == Interviewer {
		return "Entrevistador"
	}
	return "Entrevistado"
}

func (r SpeakerRole) String() string {
	if r == Interviewer {
		return "interviewer"
	}
	return "interviewee"
}

// BusinessArea is one entry of the business taxonomy. Priority 1 is highest.
type BusinessArea struct {
	Code        string   `json:"code"`
	DisplayName string   `json:"display_name"`
	Priority    int      `json:"priority"`
	Keywords    []string `json:"-"`
}

type AreaScore struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Priority   int     `json:"priority"`
	Hits       int     `json:"hits"`
}

type Sentiment string

const (
	SentimentPositive    Sentiment = "POS"
	SentimentOpportunity Sentiment = "OPO"
	SentimentUrgent      Sentiment = "URG"
)

type ClassificationResult struct {
	RankedAreas    []AreaScore `json:"ranked_areas"`
	Sentiment      Sentiment   `json:"sentiment"`
	SubjectCompany string      `json:"subject_company"`
}

func (c ClassificationResult) Primary() AreaScore {
	if len(c.RankedAreas) == 0 {
		return AreaScore{}
	}
	return c.RankedAreas[0]
}

// Metadata is supplied from outside the core, usually parsed from the audio filename.
type Metadata struct {
	Region          string `json:"region"`
	Program         string `json:"program"`
	Year            string `json:"year"`
	IntervieweeName string `json:"interviewee_name"`
	IntervieweeID   string `json:"interviewee_id"`
	CompanyName     string `json:"company_name"`
	CompanyID       string `json:"company_id"`
}

// InsightRecord is the final per-segment output row.
type InsightRecord struct {
	Index           int       `json:"index"`
	Start           string    `json:"start"`
	End             string    `json:"end"`
	Duration        string    `json:"duration"`
	Speaker         string    `json:"speaker"`
	OriginalText    string    `json:"original_text"`
	TransformedText string    `json:"transformed_text"`
	AreaCode        string    `json:"area_code"`
	AreaName        string    `json:"area_name"`
	AreaCodes       string    `json:"area_codes"`
	AreaNames       string    `json:"area_names"`
	Sentiment       Sentiment `json:"sentiment"`
	SubjectCompany  string    `json:"subject_company"`
	ConfidencePct   int       `json:"confidence_pct"`
	Metadata
	CorrectedArea      string `json:"corrected_area"`
	CorrectedSentiment string `json:"corrected_sentiment"`
	ReviewerNotes      string `json:"reviewer_notes"`
}

// RecordHeader lists the output columns in serialization order.
var RecordHeader = []string{
	"index", "start", "end", "duration", "speaker",
	"original_text", "transformed_text",
	"area_code", "area_name", "area_codes", "area_names",
	"sentiment", "subject_company", "confidence_pct",
	"region", "program", "year",
	"interviewee_name", "interviewee_id", "company_name", "company_id",
	"corrected_area", "corrected_sentiment", "reviewer_notes",
}

// Row renders the record in RecordHeader order.
func (r InsightRecord) Row() []string {
	return []string{
		strconv.Itoa(r.Index), r.Start, r.End, r.Duration, r.Speaker,
		r.OriginalText, r.TransformedText,
		r.AreaCode, r.AreaName, r.AreaCodes, r.AreaNames,
		string(r.Sentiment), r.SubjectCompany, strconv.Itoa(r.ConfidencePct),
		r.Region, r.Program, r.Year,
		r.IntervieweeName, r.IntervieweeID, r.CompanyName, r.CompanyID,
		r.CorrectedArea, r.CorrectedSentiment, r.ReviewerNotes,
	}
}

// Percent converts a confidence in [0,1] to a rounded integer percentage.
func Percent(confidence float64) int {
	return int(math.Round(confidence * 100))
}
