package deck

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/canvasdeck/internal/classify"
	"github.com/hyperifyio/canvasdeck/internal/planner"
)

// Renderer turns a finished slide sequence into an output document. The
// obligations every implementation carries: tables render their header row
// styled when flagged, code renders verbatim in the code font, no cell or
// line content is ever lost regardless of slide size, and slide notes land in
// the output's speaker-notes field (or nearest equivalent).
type Renderer interface {
	Render(slides []planner.Slide, fonts FontConfig, outPath string) error
}

// PDFRenderer writes one landscape page per slide. It is a deliberately
// simple layout: the goal is faithful content, not typography.
type PDFRenderer struct{}

const (
	pageW      = 297.0 // A4 landscape, mm
	marginMM   = 14.0
	bodyFontPt = 12.0
	codeFontPt = 9.5
	lineHt     = 6.0
	codeLineHt = 4.5
)

func (r *PDFRenderer) Render(slides []planner.Slide, fonts FontConfig, outPath string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)

	bodyFont := fonts.Resolve("default")
	codeFont := fonts.Resolve("code")
	mathFont := fonts.Resolve("math")

	if len(slides) == 0 {
		// A zero-slide deck still produces a well-formed file.
		pdf.AddPage()
	}
	for i, s := range slides {
		pdf.AddPage()
		if s.Title != "" {
			size := 22.0
			if s.TitleLevel >= 2 {
				size = 18.0
			}
			pdf.SetFont(bodyFont, "B", size)
			pdf.CellFormat(0, 12, s.Title, "", 1, "L", false, 0, "")
			pdf.Ln(2)
		} else if s.Continuation {
			pdf.SetFont(bodyFont, "I", 10)
			pdf.CellFormat(0, 6, "(continued)", "", 1, "L", false, 0, "")
			pdf.Ln(2)
		}
		for _, b := range s.Blocks {
			renderBlock(pdf, b, bodyFont, codeFont, mathFont)
		}
		if s.Notes != "" {
			renderNotes(pdf, s.Notes, bodyFont)
		}
		pdf.SetFont(bodyFont, "", 8)
		pdf.SetY(-marginMM)
		pdf.CellFormat(0, 5, fmt.Sprintf("%d / %d", i+1, len(slides)), "", 0, "R", false, 0, "")
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	return nil
}

func renderBlock(pdf *gofpdf.Fpdf, b classify.Block, bodyFont, codeFont, mathFont string) {
	switch b.Kind {
	case classify.KindHeading:
		// Deep headings kept inside a slide body render as bold lead-ins.
		pdf.SetFont(bodyFont, "B", 14)
		pdf.MultiCell(0, lineHt+1, b.Text, "", "L", false)
		pdf.Ln(1)
	case classify.KindList:
		pdf.SetFont(bodyFont, "", bodyFontPt)
		for i, item := range b.Items {
			prefix := "• "
			if b.Ordered {
				prefix = fmt.Sprintf("%d. ", i+1)
			}
			pdf.MultiCell(0, lineHt, prefix+item, "", "L", false)
		}
		pdf.Ln(2)
	case classify.KindTable:
		renderTable(pdf, b, bodyFont)
	case classify.KindCode:
		// Formula blocks carry a math language tag and render in the math
		// font; everything else preformatted stays in the code font.
		font := codeFont
		if isMathLang(b.Lang) {
			font = mathFont
		}
		renderCode(pdf, b, font)
	default:
		pdf.SetFont(bodyFont, "", bodyFontPt)
		pdf.MultiCell(0, lineHt, b.Text, "", "L", false)
		pdf.Ln(2)
	}
}

func renderTable(pdf *gofpdf.Fpdf, b classify.Block, bodyFont string) {
	if len(b.Rows) == 0 {
		return
	}
	cols := len(b.Rows[0])
	if cols == 0 {
		return
	}
	colW := (pageW - 2*marginMM) / float64(cols)
	for ri, row := range b.Rows {
		header := b.HeaderRow && ri == 0
		if header {
			pdf.SetFont(bodyFont, "B", bodyFontPt-1)
			pdf.SetFillColor(230, 230, 230)
		} else {
			pdf.SetFont(bodyFont, "", bodyFontPt-1)
		}
		for _, cell := range row {
			pdf.CellFormat(colW, lineHt+1, cell, "1", 0, "L", header, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

// isMathLang recognizes the language tags canvas uses for formula blocks.
func isMathLang(lang string) bool {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "math", "latex", "tex", "katex":
		return true
	}
	return false
}

// renderCode writes every literal line untouched. gofpdf's auto page break
// keeps long blocks flowing onto follow-up pages so no line is ever dropped.
func renderCode(pdf *gofpdf.Fpdf, b classify.Block, codeFont string) {
	pdf.SetFont(codeFont, "", codeFontPt)
	pdf.SetFillColor(245, 245, 245)
	for _, line := range strings.Split(b.Literal, "\n") {
		if line == "" {
			line = " "
		}
		// MultiCell wraps overlong lines instead of clipping them.
		pdf.MultiCell(0, codeLineHt, line, "", "L", true)
	}
	pdf.Ln(2)
}

func renderNotes(pdf *gofpdf.Fpdf, notes, bodyFont string) {
	pdf.Ln(2)
	pdf.SetFont(bodyFont, "I", 9)
	pdf.CellFormat(0, 5, "Speaker notes", "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 4.5, notes, "", "L", false)
}
