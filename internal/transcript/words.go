// Package transcript decodes the word-level output of the transcription service.
package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"interview-insights-go/internal/types"
)

// DefaultSpeakerTag is used for words that arrive without a speaker_id.
const DefaultSpeakerTag = "speaker_unknown"

// ErrMalformedTiming is matched by every MalformedTimingError.
var ErrMalformedTiming = errors.New("malformed word timing")

// MalformedTimingError reports a word whose start or end is not a number.
type MalformedTimingError struct {
	Index int
	Word  string
	Field string
	Value string
	Err   error
}

func (e *MalformedTimingError) Error() string {
	msg := fmt.Sprintf("word %d (%q): %s %q is not a number", e.Index, e.Word, e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedTimingError) Unwrap() error { return e.Err }

func (e *MalformedTimingError) Is(target error) bool { return target == ErrMalformedTiming }

// RawWord is one word object as produced upstream. Start and End may be JSON
// numbers or numeric strings.
type RawWord struct {
	Word      string          `json:"word"`
	Text      string          `json:"text,omitempty"`
	SpeakerID *string         `json:"speaker_id,omitempty"`
	Start     json.RawMessage `json:"start"`
	End       json.RawMessage `json:"end"`
	Type      string          `json:"type,omitempty"`
}

// Response is the envelope returned by the transcription service.
type Response struct {
	LanguageCode string    `json:"language_code,omitempty"`
	Text         string    `json:"text,omitempty"`
	Words        []RawWord `json:"words"`
}

// Decode parses a JSON document that is either a Response envelope or a bare
// array of word objects.
func Decode(data []byte) ([]RawWord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var words []RawWord
		if err := json.Unmarshal(trimmed, &words); err != nil {
			return nil, fmt.Errorf("decode words: %w", err)
		}
		return words, nil
	}
	var resp Response
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return resp.Words, nil
}

// ToTokens converts raw words into WordTokens. Spacing and audio-event entries
// are dropped; any unparsable timing fails the whole conversion.
func ToTokens(raw []RawWord) ([]types.WordToken, error) {
	out := make([]types.WordToken, 0, len(raw))
	for i, w := range raw {
		if w.Type == "spacing" || w.Type == "audio_event" {
			continue
		}
		text := w.Word
		if text == "" {
			text = w.Text
		}
		start, err := parseSeconds(w.Start)
		if err != nil {
			return nil, &MalformedTimingError{Index: i, Word: text, Field: "start", Value: string(w.Start), Err: err}
		}
		end, err := parseSeconds(w.End)
		if err != nil {
			return nil, &MalformedTimingError{Index: i, Word: text, Field: "end", Value: string(w.End), Err: err}
		}
		speaker := DefaultSpeakerTag
		if w.SpeakerID != nil && strings.TrimSpace(*w.SpeakerID) != "" {
			speaker = strings.TrimSpace(*w.SpeakerID)
		}
		out = append(out, types.WordToken{Text: text, SpeakerID: speaker, StartSec: start, EndSec: end})
	}
	return out, nil
}

// Parse is Decode followed by ToTokens.
func Parse(data []byte) ([]types.WordToken, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return ToTokens(raw)
}

func parseSeconds(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, errors.New("missing value")
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
