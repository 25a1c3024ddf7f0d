// Package processor runs one interview end to end: obtain words, segment and
// classify them, then summarize.
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"interview-insights-go/internal/actionable"
	"interview-insights-go/internal/aggregator"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/metadata"
	"interview-insights-go/internal/metrics"
	"interview-insights-go/internal/pipeline"
	"interview-insights-go/internal/transcript"
	"interview-insights-go/internal/types"
)

// ErrBadRequest marks failures caused by the caller's input.
var ErrBadRequest = errors.New("bad request")

// WordSource fetches word-level transcript JSON for a recording.
type WordSource interface {
	GetWords(ctx context.Context, audioURL string) ([]byte, error)
}

// Request carries either inline words or an audio URL to transcribe. Filename
// feeds metadata parsing and defaults to the audio URL.
type Request struct {
	AudioURL string          `json:"audio_url,omitempty"`
	Filename string          `json:"filename,omitempty"`
	Words    json.RawMessage `json:"words,omitempty"`
}

type Result struct {
	RunID      string                `json:"run_id"`
	AudioURL   string                `json:"audio_url,omitempty"`
	Metadata   types.Metadata        `json:"metadata"`
	Records    []types.InsightRecord `json:"records"`
	Summary    aggregator.Summary    `json:"summary"`
	Action     actionable.ActionCard `json:"action"`
	DurationMs int64                 `json:"duration_ms"`
}

type Processor struct {
	source               WordSource
	pipeline             *pipeline.Pipeline
	metrics              *metrics.Metrics
	log                  *logrus.Entry
	transcriptionTimeout time.Duration
}

// New wires a Processor. source may be nil when only inline words are used.
func New(source WordSource, p *pipeline.Pipeline, m *metrics.Metrics, transcriptionTimeout time.Duration, log *logrus.Entry) *Processor {
	if log == nil {
		log = logger.New().Component("processor")
	}
	return &Processor{source: source, pipeline: p, metrics: m, log: log, transcriptionTimeout: transcriptionTimeout}
}

func (p *Processor) Process(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	defer func() { p.metrics.ObserveInterview(err) }()

	name := req.Filename
	if name == "" {
		name = req.AudioURL
	}
	meta := metadata.FromFilename(name)
	log := p.log.WithFields(logrus.Fields{"audio_url": req.AudioURL, "filename": req.Filename})

	raw, err := p.words(ctx, req)
	if err != nil {
		return Result{}, err
	}
	words, err := transcript.Parse(raw)
	if err != nil {
		log.WithError(err).Warn("transcript rejected")
		return Result{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	run, err := p.pipeline.Run(ctx, words, meta)
	if err != nil {
		return Result{}, err
	}
	summary := aggregator.Aggregate(run.Records)
	res = Result{
		RunID:      run.RunID,
		AudioURL:   req.AudioURL,
		Metadata:   meta,
		Records:    run.Records,
		Summary:    summary,
		Action:     actionable.Generate(summary),
		DurationMs: time.Since(start).Milliseconds(),
	}
	log.WithFields(logrus.Fields{
		"run_id":      res.RunID,
		"records":     len(res.Records),
		"duration_ms": res.DurationMs,
	}).Info("interview processed")
	return res, nil
}

func (p *Processor) words(ctx context.Context, req Request) ([]byte, error) {
	if len(req.Words) > 0 && string(req.Words) != "null" {
		return req.Words, nil
	}
	if req.AudioURL == "" {
		return nil, fmt.Errorf("%w: either words or audio_url is required", ErrBadRequest)
	}
	if p.source == nil {
		return nil, errors.New("no transcription source configured")
	}
	if p.transcriptionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.transcriptionTimeout)
		defer cancel()
	}
	start := time.Now()
	raw, err := p.source.GetWords(ctx, req.AudioURL)
	p.metrics.ObserveTranscription(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("transcription: %w", err)
	}
	return raw, nil
}
