package classify

import (
	"regexp"
	"strings"

	"github.com/hyperifyio/canvasdeck/internal/extract"
)

// Classify converts raw fragments into typed blocks. Rules apply in priority
// order per fragment run: table, code, list, heading, note, then paragraph as
// the default. Classification is total: every fragment maps to exactly one
// block, and a fragment with no retrievable text becomes an empty paragraph
// rather than failing the document.
func Classify(frags []extract.RawFragment) []Block {
	blocks := make([]Block, 0, len(frags))
	i := 0
	for i < len(frags) {
		// 1. Table: a contiguous run of at least two row-shaped fragments.
		if rows, headerRow, n := tableRun(frags[i:]); n >= 2 {
			blocks = append(blocks, Table(squareRows(rows), headerRow))
			i += n
			continue
		}
		f := frags[i]
		// 2. Code: tagged preformatted, or an indentation-consistent body.
		if f.Kind == extract.KindPreformatted || looksIndented(f.Text) {
			blocks = append(blocks, Code(f.Lang, f.Text))
			i++
			continue
		}
		// 3. List: consecutive marker-carrying fragments collapse into one.
		if items, ordered, n := listRun(frags[i:]); n > 0 {
			blocks = append(blocks, List(ordered, items))
			i += n
			continue
		}
		// 4. Heading with clamped level.
		if f.Kind == extract.KindHeading {
			blocks = append(blocks, Heading(clampLevel(f.HeadingLevel), f.Text))
			i++
			continue
		}
		// 5. Note: kept in stream order; the planner routes it to slide notes.
		if f.Kind == extract.KindNote {
			blocks = append(blocks, Note(f.Text))
			i++
			continue
		}
		// 6. Default paragraph; empty text stays an empty paragraph.
		blocks = append(blocks, Paragraph(f.Text))
		i++
	}
	return blocks
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// tableRun consumes a prefix of row-shaped fragments. A fragment counts as a
// row when the strategy tagged it as one or its text is delimiter-aligned
// (pipe cells, like a markdown table). The header flag comes from the first
// row's hint.
func tableRun(frags []extract.RawFragment) ([][]string, bool, int) {
	var rows [][]string
	headerRow := false
	n := 0
	for _, f := range frags {
		cells, ok := rowCells(f)
		if !ok {
			break
		}
		if n == 0 {
			headerRow = f.HeaderRow
		}
		rows = append(rows, cells)
		n++
	}
	return rows, headerRow, n
}

func rowCells(f extract.RawFragment) ([]string, bool) {
	if f.Kind == extract.KindTableRow {
		if len(f.Cells) > 0 {
			return f.Cells, true
		}
		return []string{f.Text}, true
	}
	if f.Kind == extract.KindPlain && strings.Count(f.Text, "|") >= 2 {
		trimmed := strings.Trim(f.Text, "|")
		parts := strings.Split(trimmed, "|")
		cells := make([]string, 0, len(parts))
		for _, p := range parts {
			cells = append(cells, strings.TrimSpace(p))
		}
		return cells, true
	}
	return nil, false
}

// squareRows makes the table rectangular. Column count comes from the first
// row; later rows are right-padded with empty cells or truncated to match.
// Rows are never dropped, so ragged captures lose no data.
func squareRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	width := len(rows[0])
	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == width {
			out[i] = row
			continue
		}
		squared := make([]string, width)
		copy(squared, row)
		out[i] = squared
	}
	return out
}

// listRun consumes a prefix of fragments that carry a list marker, either as
// a strategy tag or as a textual bullet/number prefix. The list is ordered
// when the first marker is numeric.
func listRun(frags []extract.RawFragment) ([]string, bool, int) {
	var items []string
	ordered := false
	n := 0
	for _, f := range frags {
		item, marker, ok := listItem(f)
		if !ok {
			break
		}
		if n == 0 {
			ordered = isNumericMarker(marker)
		}
		items = append(items, item)
		n++
	}
	return items, ordered, n
}

var (
	bulletMarkerRe = regexp.MustCompile(`^([-*•])\s+(.*)$`)
	numberMarkerRe = regexp.MustCompile(`^(\d{1,3}[.)])\s+(.*)$`)
)

func listItem(f extract.RawFragment) (text, marker string, ok bool) {
	if f.Kind == extract.KindListItem {
		return f.Text, f.Marker, true
	}
	if f.Kind != extract.KindPlain {
		return "", "", false
	}
	if m := bulletMarkerRe.FindStringSubmatch(f.Text); m != nil {
		return m[2], m[1], true
	}
	if m := numberMarkerRe.FindStringSubmatch(f.Text); m != nil {
		return m[2], m[1], true
	}
	return "", "", false
}

func isNumericMarker(marker string) bool {
	marker = strings.TrimRight(marker, ".)")
	if marker == "" {
		return false
	}
	for _, r := range marker {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// looksIndented applies the code heuristic for untagged fragments: at least
// 70% of a multi-line body sharing a common leading-whitespace pattern reads
// as indented source.
func looksIndented(text string) bool {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return false
	}
	nonEmpty, indented := 0, 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ") {
			indented++
		}
	}
	if nonEmpty < 2 {
		return false
	}
	return float64(indented) >= 0.7*float64(nonEmpty)
}
