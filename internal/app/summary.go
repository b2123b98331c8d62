package app

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteSummaryXLSX exports the per-document batch outcomes as a small
// workbook: one row per document with URL, status, winning strategy, slide
// count, output path, and error text.
func WriteSummaryXLSX(results []DocumentResult, outPath string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Documents"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"URL", "Status", "Strategy", "Slides", "Output", "Error"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for ri, r := range results {
		row := ri + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.URL)
		write(2, statusOf(r))
		write(3, r.Strategy)
		write(4, r.Slides)
		write(5, r.OutPath)
		if r.Err != nil {
			write(6, r.Err.Error())
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

func statusOf(r DocumentResult) string {
	switch {
	case r.Failed():
		return "failed"
	case r.EmptyDeck:
		return "empty"
	default:
		return "ok"
	}
}
