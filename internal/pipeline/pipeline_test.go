package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-insights-go/internal/classifier"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/metrics"
	"interview-insights-go/internal/segmenter"
	"interview-insights-go/internal/types"
)

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

// utterance turns a sentence into contiguous words of wordLen seconds.
func utterance(speaker string, t0, wordLen float64, sentence string) []types.WordToken {
	fields := strings.Fields(sentence)
	out := make([]types.WordToken, len(fields))
	for i, f := range fields {
		s := t0 + float64(i)*wordLen
		out[i] = types.WordToken{Text: f, SpeakerID: speaker, StartSec: s, EndSec: s + wordLen}
	}
	return out
}

func interview() []types.WordToken {
	words := utterance("speaker_0", 0, 0.6, "¿cómo es trabajar con sus proveedores?")
	return append(words, utterance("speaker_1", 15, 0.5, "ok eh pues no sé, es complejo trabajar con proveedores")...)
}

func firstOpts(workers int) Options {
	return Options{
		Segmenter:      segmenter.DefaultConfig(),
		InterviewerTag: "speaker_0",
		Workers:        workers,
		FirstCandidate: true,
	}
}

func TestRun_Interview(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	p := New(firstOpts(2), m, quietLog())
	meta := types.Metadata{Region: "norte", CompanyName: "lacteos-del-valle", CompanyID: "42"}

	res, err := p.Run(context.Background(), interview(), meta)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	require.Len(t, res.Segments, 2)
	assert.NotEmpty(t, res.RunID)

	q := res.Records[0]
	assert.Equal(t, 1, q.Index)
	assert.Equal(t, "Entrevistador", q.Speaker)
	assert.Equal(t, "0:00.000", q.Start)
	assert.Equal(t, "0:03.600", q.End)
	assert.Equal(t, "¿cómo es trabajar con sus proveedores?", q.OriginalText)
	assert.Equal(t, q.OriginalText, q.TransformedText)

	a := res.Records[1]
	assert.Equal(t, 2, a.Index)
	assert.Equal(t, "Entrevistado", a.Speaker)
	assert.Equal(t, "0:15.000", a.Start)
	assert.Equal(t, "0:20.000", a.End)
	assert.Equal(t, "0:05.000", a.Duration)
	assert.Equal(t, "ok eh pues no sé, es complejo trabajar con proveedores", a.OriginalText)
	assert.Equal(t, "Trabajar con proveedores representa un reto operativo.", a.TransformedText)
	assert.Equal(t, "1004", a.AreaCode)
	assert.Equal(t, 55, a.ConfidencePct)
	assert.Equal(t, types.SentimentOpportunity, a.Sentiment)
	assert.Equal(t, "TBD", a.SubjectCompany)
	assert.Equal(t, "42", a.CompanyID)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SegmentsTotal.WithLabelValues("long_pause")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SegmentsTotal.WithLabelValues("end_of_stream")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("1004", "OPO")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AreaFallbackTotal))
}

func TestRun_ClassifiesRewrittenText(t *testing.T) {
	words := utterance("speaker_0", 0, 0.6, "¿cómo va la relación con ellos?")
	words = append(words, utterance("speaker_1", 15, 0.5, "tenemos problemas con la entrega pero el producto es excelente")...)

	p := New(firstOpts(1), metrics.New(prometheus.NewRegistry()), quietLog())
	res, err := p.Run(context.Background(), words, types.Metadata{})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	a := res.Records[1]
	require.NotEqual(t, a.OriginalText, a.TransformedText)

	want := classifier.New().Classify(a.TransformedText)
	assert.Equal(t, want.Sentiment, a.Sentiment)
	assert.Equal(t, want.Primary().Code, a.AreaCode)
	assert.Equal(t, want.SubjectCompany, a.SubjectCompany)
}

func TestRun_Empty(t *testing.T) {
	res, err := New(firstOpts(1), nil, quietLog()).Run(context.Background(), nil, types.Metadata{})
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Empty(t, res.Segments)
}

func TestRun_SeededIsReproducibleAcrossWorkerCounts(t *testing.T) {
	var words []types.WordToken
	for k := 0; k < 6; k++ {
		words = append(words, utterance("speaker_1", float64(k)*20, 0.5, "creo que el mercado crece mucho en la región")...)
	}
	seed := int64(11)
	opts := Options{Segmenter: segmenter.DefaultConfig(), InterviewerTag: "speaker_0", Seed: &seed}

	opts.Workers = 1
	serial, err := New(opts, nil, quietLog()).Run(context.Background(), words, types.Metadata{CompanyName: "acme"})
	require.NoError(t, err)
	opts.Workers = 4
	parallel, err := New(opts, nil, quietLog()).Run(context.Background(), words, types.Metadata{CompanyName: "acme"})
	require.NoError(t, err)

	require.Len(t, serial.Records, 6)
	assert.Equal(t, serial.Records, parallel.Records)
	for _, r := range serial.Records {
		assert.Contains(t, strings.ToLower(r.TransformedText), "acme")
	}
}

func TestRun_RecordsFollowSegmentOrder(t *testing.T) {
	var words []types.WordToken
	for k := 0; k < 20; k++ {
		words = append(words, utterance("speaker_1", float64(k)*20, 0.8, "la entrega llega tarde siempre")...)
	}
	res, err := New(firstOpts(8), nil, quietLog()).Run(context.Background(), words, types.Metadata{})
	require.NoError(t, err)
	require.Len(t, res.Records, 20)
	for i, r := range res.Records {
		assert.Equal(t, i+1, r.Index)
		assert.Equal(t, res.Segments[i].StartTime, float64(i)*20)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := New(firstOpts(2), nil, quietLog()).Run(ctx, interview(), types.Metadata{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, res.Records)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Perspective.Mode = config.PerspectiveFirst
	cfg.Workers = 3

	opts := OptionsFromConfig(cfg)
	assert.True(t, opts.FirstCandidate)
	assert.Equal(t, 3, opts.Workers)
	assert.Equal(t, cfg.InterviewerTag, opts.InterviewerTag)
	assert.Equal(t, cfg.Segmenter, opts.Segmenter)
}

func TestCompanyDisplayName(t *testing.T) {
	assert.Equal(t, "lacteos del valle", companyDisplayName("lacteos-del-valle"))
	assert.Equal(t, "", companyDisplayName(""))
}
