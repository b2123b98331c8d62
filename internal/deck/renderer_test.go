package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperifyio/canvasdeck/internal/classify"
	"github.com/hyperifyio/canvasdeck/internal/planner"
)

func TestPDFRenderer_WritesDeck(t *testing.T) {
	slides := []planner.Slide{
		{
			Title:      "Intro",
			TitleLevel: 1,
			Blocks: []classify.Block{
				classify.Paragraph("Hello"),
				classify.Table([][]string{{"a", "b"}, {"c", ""}}, true),
				classify.Code("go", "package main\n\nfunc main() {}"),
			},
			Notes: "remember X",
		},
		{Continuation: true, Blocks: []classify.Block{classify.List(true, []string{"one", "two"})}},
	}

	out := filepath.Join(t.TempDir(), "deck.pdf")
	r := &PDFRenderer{}
	if err := r.Render(slides, FontConfig{}, out); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() < 500 {
		t.Fatalf("deck suspiciously small: %d bytes", info.Size())
	}
}

func TestIsMathLang(t *testing.T) {
	for _, lang := range []string{"math", "latex", "TeX", " katex "} {
		if !isMathLang(lang) {
			t.Fatalf("expected %q to be recognized as math", lang)
		}
	}
	for _, lang := range []string{"", "go", "python"} {
		if isMathLang(lang) {
			t.Fatalf("%q wrongly recognized as math", lang)
		}
	}
}

func TestPDFRenderer_FormulaBlockUsesMathFont(t *testing.T) {
	slides := []planner.Slide{
		{
			Title:      "Energy",
			TitleLevel: 1,
			Blocks: []classify.Block{
				classify.Code("latex", "E = mc^2"),
				classify.Code("go", "fmt.Println(42)"),
			},
		},
	}

	out := filepath.Join(t.TempDir(), "math.pdf")
	r := &PDFRenderer{}
	fonts := FontConfig{Math: "Times", Code: "Courier"}
	if err := r.Render(slides, fonts, out); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestPDFRenderer_EmptyDeckStillWrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.pdf")
	r := &PDFRenderer{}
	if err := r.Render(nil, FontConfig{}, out); err != nil {
		t.Fatalf("render of empty deck failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}
