package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ReadURLList reads a batch file with one canvas URL per line. Blank lines
// and lines starting with # are skipped.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch list: %w", err)
	}
	return urls, nil
}

// RunBatch processes documents one at a time, each run fully isolated: a
// failed or malformed document is recorded and skipped, never aborting the
// rest of the batch. The per-item summary is logged and, when configured,
// exported as an XLSX workbook.
func (a *App) RunBatch(ctx context.Context) error {
	urls, err := ReadURLList(a.cfg.BatchPath)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		log.Warn().Str("list", a.cfg.BatchPath).Msg("batch list is empty")
		return nil
	}

	outDir := a.cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	results := make([]DocumentResult, 0, len(urls))
	failed := 0
	for i, url := range urls {
		outPath := filepath.Join(outDir, fmt.Sprintf("deck-%03d.pdf", i+1))
		res := a.ProcessURL(ctx, url, outPath)
		if res.Failed() {
			failed++
			log.Error().Err(res.Err).Str("url", url).Msg("document failed; continuing batch")
		}
		results = append(results, res)
		if err := ctx.Err(); err != nil {
			// Cooperative cancellation between documents only.
			log.Warn().Err(err).Int("processed", len(results)).Msg("batch interrupted")
			break
		}
	}

	log.Info().
		Int("total", len(results)).
		Int("failed", failed).
		Int("ok", len(results)-failed).
		Msg("batch finished")

	if a.cfg.SummaryPath != "" {
		if err := WriteSummaryXLSX(results, a.cfg.SummaryPath); err != nil {
			log.Warn().Err(err).Str("out", a.cfg.SummaryPath).Msg("summary export failed")
		} else {
			log.Info().Str("out", a.cfg.SummaryPath).Msg("wrote batch summary")
		}
	}

	if failed == len(results) {
		return ErrAllDocumentsFailed
	}
	return nil
}
