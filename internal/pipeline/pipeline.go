// Package pipeline runs one transcript through segmentation, per-segment
// rewriting and classification, and record assembly.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"interview-insights-go/internal/assembler"
	"interview-insights-go/internal/classifier"
	"interview-insights-go/internal/config"
	"interview-insights-go/internal/logger"
	"interview-insights-go/internal/metrics"
	"interview-insights-go/internal/segmenter"
	"interview-insights-go/internal/transform"
	"interview-insights-go/internal/types"
)

type Options struct {
	Segmenter      segmenter.Config
	InterviewerTag string
	Workers        int
	// FirstCandidate disables randomness in the perspective phase.
	FirstCandidate bool
	// Seed, when set, makes random perspective choices reproducible. Segment i
	// draws from a source seeded with *Seed + i.
	Seed *int64
}

// OptionsFromConfig maps service configuration onto pipeline options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Segmenter:      cfg.Segmenter,
		InterviewerTag: cfg.InterviewerTag,
		Workers:        cfg.Workers,
		FirstCandidate: cfg.Perspective.Mode == config.PerspectiveFirst,
		Seed:           cfg.Perspective.Seed,
	}
}

type Result struct {
	RunID    string                `json:"run_id"`
	Segments []types.Segment       `json:"-"`
	Records  []types.InsightRecord `json:"records"`
}

type Pipeline struct {
	opts       Options
	segmenter  *segmenter.Segmenter
	classifier *classifier.Classifier
	assembler  *assembler.Assembler
	metrics    *metrics.Metrics
	log        *logrus.Entry
}

// New builds a Pipeline. m may be nil; a nil log falls back to the default logger.
func New(opts Options, m *metrics.Metrics, log *logrus.Entry) *Pipeline {
	if log == nil {
		log = logger.New().Component("pipeline")
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pipeline{
		opts:       opts,
		segmenter:  segmenter.New(opts.Segmenter, log.WithField("stage", "segmenter")),
		classifier: classifier.New(),
		assembler:  assembler.New(opts.InterviewerTag),
		metrics:    m,
		log:        log,
	}
}

// Run processes one transcript. Segmentation finishes before any segment is
// rewritten; segments are then handled concurrently and records come back in
// segment order. If ctx is cancelled the partial output is discarded.
func (p *Pipeline) Run(ctx context.Context, words []types.WordToken, meta types.Metadata) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.NewString()}
	log := p.log.WithField("run_id", res.RunID)

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("pipeline: %w", err)
	}

	segs := p.segmenter.Segment(words)
	records := make([]types.InsightRecord, len(segs))
	company := companyDisplayName(meta.CompanyName)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, seg := range segs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = p.process(i, seg, company, meta)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("run aborted")
		return Result{}, fmt.Errorf("pipeline: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("pipeline: %w", err)
	}

	p.metrics.ObserveSegments(segs)
	for _, r := range records {
		p.metrics.ObserveRecord(r, r.AreaCode == classifier.DefaultAreaCode)
	}
	elapsed := time.Since(start)
	p.metrics.ObservePipeline(elapsed)

	log.WithFields(logrus.Fields{
		"words":       len(words),
		"segments":    len(segs),
		"duration_ms": elapsed.Milliseconds(),
	}).Info("transcript processed")

	res.Segments = segs
	res.Records = records
	return res, nil
}

// process handles segment i. Classification reads the rewritten text, the
// same text that lands in the record.
func (p *Pipeline) process(i int, seg types.Segment, company string, meta types.Metadata) types.InsightRecord {
	text := seg.Text()
	role := p.assembler.Role(seg.Speaker)
	rewritten := p.transformer(i).Transform(text, role, company)
	cls := p.classifier.Classify(rewritten)
	return p.assembler.Assemble(i+1, seg, rewritten, cls, meta)
}

// transformer returns a Transformer private to segment i so no random source
// is shared between goroutines.
func (p *Pipeline) transformer(i int) *transform.Transformer {
	switch {
	case p.opts.FirstCandidate:
		return transform.New(transform.WithChooser(transform.FirstCandidate()))
	case p.opts.Seed != nil:
		return transform.New(transform.WithSeed(*p.opts.Seed + int64(i)))
	default:
		return transform.New()
	}
}

// companyDisplayName turns a filename slug like "lacteos-del-valle" into
// words. Empty stays empty so the transformer uses its generic wording.
func companyDisplayName(slug string) string {
	return strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
}
