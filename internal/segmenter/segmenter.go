// Package segmenter groups a word stream into speaker segments using pause,
// duration, speaker-run and topic heuristics.
package segmenter

import (
	"github.com/sirupsen/logrus"

	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/types"
)

// accumulator is the segment currently being built.
type accumulator struct {
	words []types.WordToken
	start float64
	end   float64
}

func (a *accumulator) open(w types.WordToken) {
	a.words = []types.WordToken{w}
	a.start = w.StartSec
	a.end = w.EndSec
}

func (a *accumulator) absorb(w types.WordToken) {
	a.words = append(a.words, w)
	a.end = w.EndSec
}

func (a *accumulator) elapsed() float64 { return a.end - a.start }

// cursor is what a break rule sees: the whole stream, the position of the
// incoming word and the open accumulator.
type cursor struct {
	stream []types.WordToken
	i      int
	acc    *accumulator
}

func (c cursor) word() types.WordToken { return c.stream[c.i] }

func (c cursor) gap() float64 { return c.word().StartSec - c.acc.end }

func (c cursor) ahead(n int) []types.WordToken {
	end := c.i + n
	if end > len(c.stream) {
		end = len(c.stream)
	}
	return c.stream[c.i:end]
}

type breakRule struct {
	reason types.BreakReason
	fires  func(c cursor) bool
}

type Segmenter struct {
	cfg   Config
	rules []breakRule
	log   *logrus.Entry
}

// New builds a Segmenter. A nil log falls back to the default logger.
func New(cfg Config, log *logrus.Entry) *Segmenter {
	if log == nil {
		log = logger.New().WithField("component", "segmenter")
	}
	s := &Segmenter{cfg: cfg, log: log}
	// Evaluated top to bottom; the first rule that fires names the break.
	s.rules = []breakRule{
		{types.BreakLongPause, func(c cursor) bool {
			return c.gap() > s.cfg.LongPause
		}},
		{types.BreakTopicChange, func(c cursor) bool {
			return c.gap() > s.cfg.TopicPause && s.topicChanged(c.acc.words, c.ahead(s.cfg.TopicWindow))
		}},
		{types.BreakSpeaker, s.speakerChanged},
		{types.BreakMaxDuration, func(c cursor) bool {
			return c.word().EndSec-c.acc.start > s.cfg.MaxDuration
		}},
		{types.BreakSoftDuration, func(c cursor) bool {
			return c.acc.elapsed() > s.cfg.SoftDuration && c.gap() > s.cfg.NaturalPause
		}},
	}
	return s
}

// speakerChanged fires when the look-ahead window starting at the incoming
// word is dominated by a speaker other than the accumulator's majority, with
// at least SpeakerMinRun words from that speaker. Near the end of the stream
// the window shrinks but the required run does not.
func (s *Segmenter) speakerChanged(c cursor) bool {
	window := c.ahead(s.cfg.SpeakerWindow)
	if len(window) < s.cfg.SpeakerMinRun {
		return false
	}
	next := MajoritySpeaker(window)
	if next == MajoritySpeaker(c.acc.words) {
		return false
	}
	if s.cfg.SpeakerRunStart && next != c.word().SpeakerID {
		return false
	}
	return countSpeaker(window, next) >= s.cfg.SpeakerMinRun
}

func (s *Segmenter) breakReason(c cursor) (types.BreakReason, bool) {
	for _, r := range s.rules {
		if r.fires(c) {
			return r.reason, true
		}
	}
	return "", false
}

// Segment splits words into segments in a single pass. Empty input yields no
// segments. Every input word ends up in exactly one segment, in order.
func (s *Segmenter) Segment(words []types.WordToken) []types.Segment {
	if len(words) == 0 {
		return nil
	}
	var (
		out []types.Segment
		acc accumulator
	)
	acc.open(words[0])
	for i := 1; i < len(words); i++ {
		c := cursor{stream: words, i: i, acc: &acc}
		reason, ok := s.breakReason(c)
		if ok && acc.elapsed() >= s.cfg.MinDuration {
			out = append(out, s.finalize(&acc, reason))
			acc.open(words[i])
			continue
		}
		if ok {
			s.log.WithFields(logrus.Fields{
				"reason":  reason,
				"word":    i,
				"elapsed": acc.elapsed(),
			}).Debug("break deferred, segment below minimum duration")
		}
		acc.absorb(words[i])
	}
	out = append(out, s.finalize(&acc, types.BreakEndOfStream))
	return out
}

func (s *Segmenter) finalize(acc *accumulator, reason types.BreakReason) types.Segment {
	words := make([]types.WordToken, len(acc.words))
	copy(words, acc.words)
	seg := types.Segment{
		Words:     words,
		Speaker:   MajoritySpeaker(words),
		StartTime: words[0].StartSec,
		EndTime:   words[len(words)-1].EndSec,
		Reason:    reason,
	}
	s.log.WithFields(logrus.Fields{
		"reason":   reason,
		"speaker":  seg.Speaker,
		"words":    len(words),
		"start":    seg.StartTime,
		"duration": seg.Duration(),
	}).Debug("segment closed")
	return seg
}
