package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/canvasdeck/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		url          string
		output       string
		batchList    string
		batchDir     string
		summaryPath  string
		configPath   string
		strategies   string
		maxBlocks    int
		maxHeight    int
		fontDefault  string
		fontCode     string
		fontMath     string
		fontFallback string
		userAgent    string
		fetchTimeout time.Duration
		fetchRetries int
		verbose      bool
	)

	flag.StringVar(&url, "url", "", "Canvas document URL to convert")
	flag.StringVar(&output, "o", "", "Output deck path for single-document mode (default deck.pdf)")
	flag.StringVar(&batchList, "batch", "", "Path to a file with one canvas URL per line")
	flag.StringVar(&batchDir, "batch.dir", "", "Directory for numbered decks in batch mode")
	flag.StringVar(&summaryPath, "batch.summary", "", "Optional XLSX path for the per-document batch summary")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file")
	flag.StringVar(&strategies, "strategies", "", "Comma-separated extraction strategy order (canvas-dom,html-blocks,text-dump)")
	flag.IntVar(&maxBlocks, "max.blocks", 0, "Maximum blocks per slide before a continuation slide opens (0 = default)")
	flag.IntVar(&maxHeight, "max.height", 0, "Maximum estimated lines per slide before a continuation slide opens (0 = default)")
	flag.StringVar(&fontDefault, "font.default", "", "Font family for body text")
	flag.StringVar(&fontCode, "font.code", "", "Font family for code blocks")
	flag.StringVar(&fontMath, "font.math", "", "Font family for math content")
	flag.StringVar(&fontFallback, "font.fallback", "", "Font family used when a role is unset")
	flag.StringVar(&userAgent, "ua", "", "Custom User-Agent for snapshot requests")
	flag.DurationVar(&fetchTimeout, "timeout", 0, "Per-request snapshot timeout (0 = default 20s)")
	flag.IntVar(&fetchRetries, "attempts", 0, "Snapshot attempts including the first (0 = default 2)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		URL:               url,
		OutputPath:        output,
		BatchPath:         batchList,
		OutputDir:         batchDir,
		SummaryPath:       summaryPath,
		MaxBlocksPerSlide: maxBlocks,
		MaxSlideHeight:    maxHeight,
		UserAgent:         userAgent,
		FetchTimeout:      fetchTimeout,
		MaxAttempts:       fetchRetries,
		Verbose:           verbose,
	}
	cfg.Fonts.Default = fontDefault
	cfg.Fonts.Code = fontCode
	cfg.Fonts.Math = fontMath
	cfg.Fonts.Fallback = fontFallback
	if strategies != "" {
		for _, name := range strings.Split(strategies, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Strategies = append(cfg.Strategies, name)
			}
		}
	}

	// Precedence: flags, then environment, then config file.
	app.ApplyEnvToConfig(&cfg)
	if configPath == "" {
		configPath = os.Getenv("CANVASDECK_CONFIG")
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("config file unreadable")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: nonzero only when nothing could be converted.
		// Partial batch failures and empty decks complete with warnings.
		if errors.Is(err, app.ErrAllDocumentsFailed) {
			os.Exit(2)
		}
		os.Exit(0)
	}
}

func run(cfg app.Config) error {
	return app.New(cfg).Run(context.Background())
}
