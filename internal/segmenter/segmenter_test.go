package segmenter

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-insights-go/internal/types"
)

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func newTestSegmenter() *Segmenter {
	return New(DefaultConfig(), quietLog())
}

// run builds n contiguous words of the given length starting at t0.
func run(speaker string, t0, wordLen float64, texts ...string) []types.WordToken {
	out := make([]types.WordToken, len(texts))
	for i, txt := range texts {
		s := t0 + float64(i)*wordLen
		out[i] = types.WordToken{Text: txt, SpeakerID: speaker, StartSec: s, EndSec: s + wordLen}
	}
	return out
}

func repeat(word string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = word
	}
	return out
}

func concat(parts ...[]types.WordToken) []types.WordToken {
	var out []types.WordToken
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func flatten(segs []types.Segment) []types.WordToken {
	var out []types.WordToken
	for _, s := range segs {
		out = append(out, s.Words...)
	}
	return out
}

func TestSegment_Empty(t *testing.T) {
	assert.Empty(t, newTestSegmenter().Segment(nil))
}

func TestSegment_LongPauseSplitsSpeakers(t *testing.T) {
	words := concat(
		run("A", 0, 0.5, repeat("hola", 10)...),
		run("B", 15, 0.5, repeat("sí", 10)...),
	)

	segs := newTestSegmenter().Segment(words)
	require.Len(t, segs, 2)
	assert.Equal(t, "A", segs[0].Speaker)
	assert.Equal(t, "B", segs[1].Speaker)
	assert.Equal(t, types.BreakLongPause, segs[0].Reason)
	assert.Equal(t, types.BreakEndOfStream, segs[1].Reason)
	assert.InDelta(t, 0.0, segs[0].StartTime, 1e-9)
	assert.InDelta(t, 5.0, segs[0].EndTime, 1e-9)
	assert.InDelta(t, 15.0, segs[1].StartTime, 1e-9)
	assert.Equal(t, words, flatten(segs))
}

func TestSegment_SustainedSpeakerChange(t *testing.T) {
	words := concat(
		run("A", 0, 0.5, repeat("pregunta", 10)...),
		run("B", 5, 0.5, repeat("respuesta", 10)...),
	)

	segs := newTestSegmenter().Segment(words)
	require.Len(t, segs, 2)
	assert.Equal(t, types.BreakSpeaker, segs[0].Reason)
	// The window at word 8 already holds six B words.
	assert.Len(t, segs[0].Words, 8)
	assert.Equal(t, "B", segs[1].Speaker)
}

func TestSegment_SpeakerChangeWhileOldSpeakerTrailsOff(t *testing.T) {
	words := concat(
		run("A", 0, 0.5, repeat("pregunta", 10)...),
		run("A", 5, 0.5, "y", "bueno"),
		run("B", 6, 0.5, repeat("respuesta", 6)...),
	)

	segs := newTestSegmenter().Segment(words)
	require.Len(t, segs, 2)
	assert.Equal(t, types.BreakSpeaker, segs[0].Reason)
	assert.Len(t, segs[0].Words, 10)
	assert.Equal(t, "y", segs[1].Words[0].Text)
	assert.Equal(t, "B", segs[1].Speaker)
}

func TestSegment_SpeakerRunStartBreaksOnNewSpeaker(t *testing.T) {
	words := concat(
		run("A", 0, 0.5, repeat("pregunta", 10)...),
		run("A", 5, 0.5, "y", "bueno"),
		run("B", 6, 0.5, repeat("respuesta", 6)...),
	)
	cfg := DefaultConfig()
	cfg.SpeakerRunStart = true

	segs := New(cfg, quietLog()).Segment(words)
	require.Len(t, segs, 2)
	assert.Equal(t, types.BreakSpeaker, segs[0].Reason)
	assert.Len(t, segs[0].Words, 12)
	assert.Equal(t, "B", segs[1].Words[0].SpeakerID)
}

func TestSegment_StrayWordDoesNotSplit(t *testing.T) {
	words := run("A", 0, 0.5, repeat("texto", 20)...)
	words[8].SpeakerID = "B"
	words[9].SpeakerID = "B"

	segs := newTestSegmenter().Segment(words)
	require.Len(t, segs, 1)
	assert.Equal(t, "A", segs[0].Speaker)
}

func TestSegment_SpeakerChangeNeedsFullRunAtStreamEnd(t *testing.T) {
	words := concat(
		run("A", 0, 0.5, repeat("pregunta", 10)...),
		run("B", 5, 0.5, repeat("sí", 5)...),
	)

	segs := newTestSegmenter().Segment(words)
	require.Len(t, segs, 1)
	assert.Equal(t, "A", segs[0].Speaker)
}

func TestSegment_TopicChangeWithPause(t *testing.T) {
	before := run("A", 0, 0.5, strings.Fields("la distribución y la entrega con el transporte fue lenta siempre")...)
	after := run("A", 10, 0.5, strings.Fields("nuestro queso y la leche tienen buena marca en tiendas")...)
	// 4.5s gap: above the topic pause, below the long pause.

	segs := newTestSegmenter().Segment(concat(before, after))
	require.Len(t, segs, 2)
	assert.Equal(t, types.BreakTopicChange, segs[0].Reason)
}

func TestSegment_SameTopicWithPauseDoesNotSplit(t *testing.T) {
	before := run("A", 0, 0.5, strings.Fields("la distribución y la entrega con el transporte fue lenta siempre")...)
	after := run("A", 10, 0.5, strings.Fields("la logística de entrega sigue igual en cada ruta nueva")...)

	segs := newTestSegmenter().Segment(concat(before, after))
	require.Len(t, segs, 1)
}

func TestSegment_MaxDuration(t *testing.T) {
	words := run("A", 0, 0.5, repeat("palabra", 120)...)

	segs := newTestSegmenter().Segment(words)
	require.Len(t, segs, 2)
	assert.Equal(t, types.BreakMaxDuration, segs[0].Reason)
	assert.InDelta(t, 45.0, segs[0].EndTime, 1e-9)
	assert.Len(t, segs[0].Words, 90)
}

func TestSegment_SoftDurationNaturalBreak(t *testing.T) {
	words := concat(
		run("A", 0, 0.5, repeat("uno", 54)...),
		run("A", 29, 0.5, repeat("dos", 4)...),
	)

	segs := newTestSegmenter().Segment(words)
	require.Len(t, segs, 2)
	assert.Equal(t, types.BreakSoftDuration, segs[0].Reason)
	assert.Len(t, segs[0].Words, 54)
}

func TestSegment_MinimumDurationDefersBreak(t *testing.T) {
	words := concat(
		run("A", 0, 0.5, "hola", "buenas"),
		run("B", 12, 0.5, repeat("sí", 5)...),
	)

	segs := newTestSegmenter().Segment(words)
	require.Len(t, segs, 1)
	assert.Equal(t, "B", segs[0].Speaker)
	assert.Equal(t, words, flatten(segs))
}

func TestSegment_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	speakers := []string{"speaker_0", "speaker_1"}
	vocab := []string{"distribución", "queso", "problema", "precio", "alianza", "bueno", "y", "la", "con", "entrega"}

	for trial := 0; trial < 50; trial++ {
		var words []types.WordToken
		now := 0.0
		spk := speakers[0]
		n := 50 + rng.Intn(400)
		for i := 0; i < n; i++ {
			if rng.Float64() < 0.03 {
				spk = speakers[rng.Intn(2)]
			}
			switch p := rng.Float64(); {
			case p < 0.02:
				now += 8 + rng.Float64()*4
			case p < 0.06:
				now += 1 + rng.Float64()*5
			default:
				now += rng.Float64() * 0.2
			}
			dur := 0.1 + rng.Float64()*0.6
			words = append(words, types.WordToken{
				Text: vocab[rng.Intn(len(vocab))], SpeakerID: spk, StartSec: now, EndSec: now + dur,
			})
			now += dur
		}

		segs := newTestSegmenter().Segment(words)
		require.NotEmpty(t, segs)
		require.Equal(t, words, flatten(segs), "trial %d", trial)
		for i, s := range segs {
			require.NotEmpty(t, s.Words)
			assert.Equal(t, s.Words[0].StartSec, s.StartTime)
			assert.Equal(t, s.Words[len(s.Words)-1].EndSec, s.EndTime)
			assert.LessOrEqual(t, s.Duration(), 45.0+1e-9, "trial %d segment %d", trial, i)
			if i < len(segs)-1 {
				assert.GreaterOrEqual(t, s.Duration(), 3.0, "trial %d segment %d", trial, i)
			}
		}
	}
}

func TestMajoritySpeaker(t *testing.T) {
	mk := func(tags ...string) []types.WordToken {
		out := make([]types.WordToken, len(tags))
		for i, tag := range tags {
			out[i] = types.WordToken{SpeakerID: tag}
		}
		return out
	}
	assert.Equal(t, "A", MajoritySpeaker(mk("A", "B", "B", "A")))
	assert.Equal(t, "B", MajoritySpeaker(mk("A", "B", "B")))
	assert.Equal(t, "", MajoritySpeaker(nil))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.SpeakerMinRun = 9
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.MinDuration = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.SoftDuration = 50
	assert.Error(t, bad.Validate())
}
