package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/canvasdeck/internal/deck"
)

// FileConfig represents the single-file configuration schema. Nested sections
// improve readability and map naturally to flags.
type FileConfig struct {
	URL    string `yaml:"url" json:"url"`
	Output string `yaml:"output" json:"output"`

	Batch struct {
		List    string `yaml:"list" json:"list"`
		Dir     string `yaml:"dir" json:"dir"`
		Summary string `yaml:"summary" json:"summary"`
	} `yaml:"batch" json:"batch"`

	Fonts deck.FontConfig `yaml:"fonts" json:"fonts"`

	Extract struct {
		Strategies []string `yaml:"strategies" json:"strategies"`
	} `yaml:"extract" json:"extract"`

	Overflow struct {
		MaxBlocks int `yaml:"maxBlocks" json:"maxBlocks"`
		MaxHeight int `yaml:"maxHeight" json:"maxHeight"`
	} `yaml:"overflow" json:"overflow"`

	Fetch struct {
		UserAgent   string        `yaml:"ua" json:"ua"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout"`
		MaxAttempts int           `yaml:"maxAttempts" json:"maxAttempts"`
	} `yaml:"fetch" json:"fetch"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset in cfg. Flags should already have been parsed;
// this lets file config supply defaults while preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.URL == "" && fc.URL != "" {
		cfg.URL = fc.URL
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.BatchPath == "" && fc.Batch.List != "" {
		cfg.BatchPath = fc.Batch.List
	}
	if cfg.OutputDir == "" && fc.Batch.Dir != "" {
		cfg.OutputDir = fc.Batch.Dir
	}
	if cfg.SummaryPath == "" && fc.Batch.Summary != "" {
		cfg.SummaryPath = fc.Batch.Summary
	}

	if cfg.Fonts.Default == "" {
		cfg.Fonts.Default = fc.Fonts.Default
	}
	if cfg.Fonts.Code == "" {
		cfg.Fonts.Code = fc.Fonts.Code
	}
	if cfg.Fonts.Math == "" {
		cfg.Fonts.Math = fc.Fonts.Math
	}
	if cfg.Fonts.Fallback == "" {
		cfg.Fonts.Fallback = fc.Fonts.Fallback
	}

	if len(cfg.Strategies) == 0 && len(fc.Extract.Strategies) > 0 {
		cfg.Strategies = append([]string(nil), fc.Extract.Strategies...)
	}

	if cfg.MaxBlocksPerSlide == 0 && fc.Overflow.MaxBlocks > 0 {
		cfg.MaxBlocksPerSlide = fc.Overflow.MaxBlocks
	}
	if cfg.MaxSlideHeight == 0 && fc.Overflow.MaxHeight > 0 {
		cfg.MaxSlideHeight = fc.Overflow.MaxHeight
	}

	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout == 0 && fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = fc.Fetch.Timeout
	}
	if cfg.MaxAttempts == 0 && fc.Fetch.MaxAttempts > 0 {
		cfg.MaxAttempts = fc.Fetch.MaxAttempts
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
