package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/hyperifyio/canvasdeck/internal/deck"
	"github.com/hyperifyio/canvasdeck/internal/extract"
)

// Config holds runtime configuration for the application.
type Config struct {
	// URL converts a single canvas document.
	URL string
	// BatchPath points to a file with one canvas URL per line; # comments
	// and blank lines are skipped.
	BatchPath string

	// OutputPath is the deck file for single-document mode.
	OutputPath string
	// OutputDir receives numbered deck files in batch mode.
	OutputDir string
	// SummaryPath, when set, receives an XLSX per-document summary of a
	// batch run.
	SummaryPath string

	Fonts deck.FontConfig

	// Strategies overrides the extraction strategy order by name
	// (canvas-dom, html-blocks, text-dump). Empty keeps the default order.
	Strategies []string

	// Overflow limits; zero selects planner defaults.
	MaxBlocksPerSlide int
	MaxSlideHeight    int

	// Capture client settings.
	UserAgent    string
	FetchTimeout time.Duration
	MaxAttempts  int

	Verbose bool
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if cfg.URL == "" && cfg.BatchPath == "" {
		return errors.New("config: either a url or a batch list is required")
	}
	if cfg.URL != "" && cfg.BatchPath != "" {
		return errors.New("config: url and batch list are mutually exclusive")
	}
	if cfg.MaxBlocksPerSlide < 0 || cfg.MaxSlideHeight < 0 {
		return errors.New("config: negative overflow limits are not allowed")
	}
	if _, err := extract.ChainFor(cfg.Strategies); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
