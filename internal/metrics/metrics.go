// Package metrics holds the Prometheus collectors for the insights pipeline.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"interview-insights-go/internal/types"
)

type Metrics struct {
	SegmentsTotal        *prometheus.CounterVec
	RecordsTotal         *prometheus.CounterVec
	AreaFallbackTotal    prometheus.Counter
	PipelineSeconds      prometheus.Histogram
	InterviewsTotal      *prometheus.CounterVec
	TranscriptionSeconds prometheus.Histogram
}

// Default registers the collectors on the global registry.
func Default() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SegmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_segments_total",
				Help: "Segments emitted, by the rule that closed them",
			},
			[]string{"reason"},
		),
		RecordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_records_total",
				Help: "Insight records produced, by primary area and sentiment",
			},
			[]string{"area", "sentiment"},
		),
		AreaFallbackTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "insights_area_fallback_total",
				Help: "Records that fell back to the default business area",
			},
		),
		PipelineSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "insights_pipeline_seconds",
				Help:    "Time to segment, transform and classify one transcript",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
		),
		InterviewsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_interviews_total",
				Help: "Interviews processed end to end, by outcome",
			},
			[]string{"status"},
		),
		TranscriptionSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "insights_transcription_seconds",
				Help:    "Latency of the external transcription call",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
			},
		),
	}
}

func (m *Metrics) ObserveSegments(segs []types.Segment) {
	if m == nil {
		return
	}
	for _, s := range segs {
		m.SegmentsTotal.WithLabelValues(string(s.Reason)).Inc()
	}
}

// ObserveRecord counts a record. fallback marks records whose primary area is
// the default one.
func (m *Metrics) ObserveRecord(r types.InsightRecord, fallback bool) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(r.AreaCode, string(r.Sentiment)).Inc()
	if fallback {
		m.AreaFallbackTotal.Inc()
	}
}

func (m *Metrics) ObservePipeline(d time.Duration) {
	if m == nil {
		return
	}
	m.PipelineSeconds.Observe(d.Seconds())
}

func (m *Metrics) ObserveTranscription(d time.Duration) {
	if m == nil {
		return
	}
	m.TranscriptionSeconds.Observe(d.Seconds())
}

func (m *Metrics) ObserveInterview(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.InterviewsTotal.WithLabelValues(status).Inc()
}
