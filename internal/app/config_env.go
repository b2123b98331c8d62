package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from CANVASDECK_* environment
// variables. Explicit cfg values (flags) take precedence over env; env takes
// precedence over the config file, which is overlaid afterwards.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.URL == "" {
		cfg.URL = os.Getenv("CANVASDECK_URL")
	}
	if cfg.BatchPath == "" {
		cfg.BatchPath = os.Getenv("CANVASDECK_BATCH")
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = os.Getenv("CANVASDECK_OUTPUT")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.Getenv("CANVASDECK_BATCH_DIR")
	}
	if cfg.SummaryPath == "" {
		cfg.SummaryPath = os.Getenv("CANVASDECK_BATCH_SUMMARY")
	}

	if cfg.Fonts.Default == "" {
		cfg.Fonts.Default = os.Getenv("CANVASDECK_FONT_DEFAULT")
	}
	if cfg.Fonts.Code == "" {
		cfg.Fonts.Code = os.Getenv("CANVASDECK_FONT_CODE")
	}
	if cfg.Fonts.Math == "" {
		cfg.Fonts.Math = os.Getenv("CANVASDECK_FONT_MATH")
	}
	if cfg.Fonts.Fallback == "" {
		cfg.Fonts.Fallback = os.Getenv("CANVASDECK_FONT_FALLBACK")
	}

	// CANVASDECK_STRATEGIES is a comma-separated strategy order
	if len(cfg.Strategies) == 0 {
		if s := strings.TrimSpace(os.Getenv("CANVASDECK_STRATEGIES")); s != "" {
			for _, name := range strings.Split(s, ",") {
				if name = strings.TrimSpace(name); name != "" {
					cfg.Strategies = append(cfg.Strategies, name)
				}
			}
		}
	}

	if cfg.MaxBlocksPerSlide == 0 {
		if n, err := strconv.Atoi(os.Getenv("CANVASDECK_MAX_BLOCKS")); err == nil && n > 0 {
			cfg.MaxBlocksPerSlide = n
		}
	}
	if cfg.MaxSlideHeight == 0 {
		if n, err := strconv.Atoi(os.Getenv("CANVASDECK_MAX_HEIGHT")); err == nil && n > 0 {
			cfg.MaxSlideHeight = n
		}
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("CANVASDECK_UA")
	}
	if cfg.FetchTimeout == 0 {
		if s := os.Getenv("CANVASDECK_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.FetchTimeout = d
			}
		}
	}
	if cfg.MaxAttempts == 0 {
		if n, err := strconv.Atoi(os.Getenv("CANVASDECK_ATTEMPTS")); err == nil && n > 0 {
			cfg.MaxAttempts = n
		}
	}

	if !cfg.Verbose {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("CANVASDECK_VERBOSE"))) {
		case "1", "true", "yes", "on":
			cfg.Verbose = true
		}
	}
}
