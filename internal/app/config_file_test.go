package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFile_YAML(t *testing.T) {
	yamlBody := `
url: https://canvas.example.com/doc/1
output: out.pdf
fonts:
  default: Helvetica
  code: Courier
overflow:
  maxBlocks: 5
  maxHeight: 12
fetch:
  ua: canvasdeck-test
  maxAttempts: 3
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if fc.URL != "https://canvas.example.com/doc/1" || fc.Output != "out.pdf" {
		t.Fatalf("basic fields wrong: %+v", fc)
	}
	if fc.Fonts.Code != "Courier" {
		t.Fatalf("fonts section wrong: %+v", fc.Fonts)
	}
	if fc.Overflow.MaxBlocks != 5 || fc.Overflow.MaxHeight != 12 {
		t.Fatalf("overflow section wrong: %+v", fc.Overflow)
	}
	if fc.Fetch.UserAgent != "canvasdeck-test" || fc.Fetch.MaxAttempts != 3 {
		t.Fatalf("fetch section wrong: %+v", fc.Fetch)
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	cfg := Config{URL: "https://flag.example.com", MaxBlocksPerSlide: 9}
	var fc FileConfig
	fc.URL = "https://file.example.com"
	fc.Overflow.MaxBlocks = 3
	fc.Overflow.MaxHeight = 20
	fc.Fonts.Default = "Times"

	ApplyFileConfig(&cfg, fc)
	if cfg.URL != "https://flag.example.com" {
		t.Fatalf("explicit flag overridden by file: %q", cfg.URL)
	}
	if cfg.MaxBlocksPerSlide != 9 {
		t.Fatalf("explicit limit overridden: %d", cfg.MaxBlocksPerSlide)
	}
	if cfg.MaxSlideHeight != 20 {
		t.Fatalf("file value not applied to unset field: %d", cfg.MaxSlideHeight)
	}
	if cfg.Fonts.Default != "Times" {
		t.Fatalf("font not applied: %q", cfg.Fonts.Default)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(Config{}); err == nil {
		t.Fatalf("expected error when neither url nor batch list set")
	}
	if err := ValidateConfig(Config{URL: "u", BatchPath: "b"}); err == nil {
		t.Fatalf("expected error when both url and batch list set")
	}
	if err := ValidateConfig(Config{URL: "u"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateConfig(Config{URL: "u", Strategies: []string{"no-such-strategy"}}); err == nil {
		t.Fatalf("expected error for unknown strategy name")
	}
	if err := ValidateConfig(Config{URL: "u", Strategies: []string{"text-dump", "canvas-dom"}}); err != nil {
		t.Fatalf("unexpected error for valid strategy order: %v", err)
	}
}

func TestApplyFileConfig_StrategyOrder(t *testing.T) {
	var fc FileConfig
	fc.Extract.Strategies = []string{"html-blocks", "text-dump"}

	cfg := Config{URL: "u"}
	ApplyFileConfig(&cfg, fc)
	if len(cfg.Strategies) != 2 || cfg.Strategies[0] != "html-blocks" {
		t.Fatalf("file strategy order not applied: %v", cfg.Strategies)
	}

	explicit := Config{URL: "u", Strategies: []string{"canvas-dom"}}
	ApplyFileConfig(&explicit, fc)
	if len(explicit.Strategies) != 1 || explicit.Strategies[0] != "canvas-dom" {
		t.Fatalf("explicit strategy order overridden by file: %v", explicit.Strategies)
	}
}
