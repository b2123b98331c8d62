package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/canvasdeck/internal/capture"
	"github.com/hyperifyio/canvasdeck/internal/classify"
	"github.com/hyperifyio/canvasdeck/internal/deck"
	"github.com/hyperifyio/canvasdeck/internal/extract"
	"github.com/hyperifyio/canvasdeck/internal/planner"
)

// ErrAllDocumentsFailed is returned when every document in a run failed
// extraction. Per the exit code policy, only this condition exits nonzero;
// partial failures and empty decks complete with warnings.
var ErrAllDocumentsFailed = errors.New("all documents failed")

// App wires the capture client, the strategy chain, and the renderer into one
// pipeline. Each document run is fully isolated; the App holds no per-document
// state.
type App struct {
	cfg      Config
	client   snapshotter
	chain    *extract.Chain
	renderer deck.Renderer
}

// snapshotter abstracts the minimal capture method used for tests.
type snapshotter interface {
	Snapshot(ctx context.Context, url string) (*capture.Capture, error)
}

func New(cfg Config) *App {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 2
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "canvasdeck/1.0 (+https://github.com/hyperifyio/canvasdeck)"
	}
	chain, err := extract.ChainFor(cfg.Strategies)
	if err != nil {
		// ValidateConfig rejects unknown names before New runs; keep the
		// pipeline usable anyway if a caller skipped validation.
		log.Warn().Err(err).Msg("invalid strategy order; using default chain")
		chain = extract.DefaultChain()
	}
	return &App{
		cfg: cfg,
		client: &capture.Client{
			UserAgent:         ua,
			MaxAttempts:       attempts,
			PerRequestTimeout: timeout,
		},
		chain:    chain,
		renderer: &deck.PDFRenderer{},
	}
}

// DocumentResult is the per-document outcome of a pipeline run.
type DocumentResult struct {
	URL      string
	Strategy string
	Slides   int
	OutPath  string
	// EmptyDeck marks a successful run over an empty document: a warning,
	// not a failure.
	EmptyDeck bool
	Err       error
}

// Failed reports whether the document could not be converted at all.
func (r DocumentResult) Failed() bool { return r.Err != nil }

// ProcessURL runs the full pipeline for one canvas document: capture,
// extraction chain, classification, slide planning, rendering. Every failure
// comes back inside the result; nothing panics or aborts sibling documents.
func (a *App) ProcessURL(ctx context.Context, url, outPath string) DocumentResult {
	res := DocumentResult{URL: url, OutPath: outPath}

	snap, err := a.client.Snapshot(ctx, url)
	if err != nil {
		res.Err = err
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	extracted, err := a.chain.Run(snap)
	if err != nil {
		res.Err = err
		return res
	}
	res.Strategy = extracted.Strategy
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	blocks := classify.Classify(extracted.Fragments)
	slides := planner.Plan(blocks, planner.Options{
		MaxBlocks: a.cfg.MaxBlocksPerSlide,
		MaxHeight: a.cfg.MaxSlideHeight,
	})
	res.Slides = len(slides)
	if len(slides) == 0 {
		res.EmptyDeck = true
		log.Warn().Str("url", url).Str("strategy", extracted.Strategy).Msg("empty document produced an empty deck")
		if planner.HasNotes(blocks) {
			log.Warn().Str("url", url).Msg("speaker notes present but no slide to attach them to")
		}
	}

	if err := a.renderer.Render(slides, a.cfg.Fonts, outPath); err != nil {
		res.Err = fmt.Errorf("render %s: %w", url, err)
		return res
	}
	log.Info().Str("url", url).Str("strategy", extracted.Strategy).Int("slides", len(slides)).Str("out", outPath).Msg("wrote deck")
	return res
}

// Run executes single-document or batch mode depending on configuration.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.BatchPath != "" {
		return a.RunBatch(ctx)
	}
	out := a.cfg.OutputPath
	if out == "" {
		out = "deck.pdf"
	}
	res := a.ProcessURL(ctx, a.cfg.URL, out)
	if res.Failed() {
		log.Error().Err(res.Err).Str("url", res.URL).Msg("document failed")
		return ErrAllDocumentsFailed
	}
	return nil
}
