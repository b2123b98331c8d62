package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperifyio/canvasdeck/internal/capture"
)

// CanvasDOMStrategy recognizes the canvas application's own block markup.
// Canvas pages render every document block as an element carrying a
// data-block-type attribute (some builds use data-canvas-block), which gives
// the most faithful fragment boundaries when present. The strategy fails fast
// when the markup carries no canvas blocks at all, handing over to the more
// permissive strategies.
type CanvasDOMStrategy struct{}

func (s *CanvasDOMStrategy) Name() string { return "canvas-dom" }

func (s *CanvasDOMStrategy) Extract(c *capture.Capture) ([]RawFragment, error) {
	if !c.HasHTML() {
		return nil, errors.New("capture has no HTML")
	}
	root, err := html.Parse(bytes.NewReader(c.HTML))
	if err != nil || root == nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	nodes := collectBlockNodes(root)
	if len(nodes) == 0 {
		return nil, errors.New("no canvas block markup found")
	}
	frags := make([]RawFragment, 0, len(nodes))
	for _, n := range nodes {
		if f, ok := fragmentFromBlockNode(n); ok {
			frags = append(frags, f)
		}
	}
	return reindex(frags), nil
}

// collectBlockNodes gathers elements tagged as canvas blocks in document
// order. Leaf blocks stop the descent so cell text is not emitted twice, but
// container blocks (a table wrapping its rows, a list wrapping its items) are
// walked through so the child blocks come out individually. A container with
// no tagged children is kept as a leaf so its content is not lost.
func collectBlockNodes(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if bt := blockType(n); bt != "" {
				if isContainerBlock(bt) {
					before := len(out)
					for c := n.FirstChild; c != nil; c = c.NextSibling {
						walk(c)
					}
					if len(out) == before {
						out = append(out, n)
					}
					return
				}
				out = append(out, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// isContainerBlock reports whether a block type groups child blocks rather
// than carrying content of its own.
func isContainerBlock(bt string) bool {
	switch bt {
	case "table", "list", "bulleted_list", "numbered_list", "column_list", "column", "group":
		return true
	}
	return false
}

func blockType(n *html.Node) string {
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if key == "data-block-type" || key == "data-canvas-block" {
			return strings.ToLower(strings.TrimSpace(a.Val))
		}
	}
	return ""
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func fragmentFromBlockNode(n *html.Node) (RawFragment, bool) {
	bt := blockType(n)
	switch {
	case strings.HasPrefix(bt, "heading") || bt == "header" || bt == "sub_header" || bt == "title":
		level := headingLevelFromType(n, bt)
		return RawFragment{Kind: KindHeading, HeadingLevel: level, Text: normalizeText(nodeText(n, false), false)}, true
	case bt == "bulleted_list_item" || bt == "bullet" || bt == "list_item":
		return RawFragment{Kind: KindListItem, Marker: "-", Text: normalizeText(nodeText(n, false), false)}, true
	case bt == "numbered_list_item" || bt == "numbered":
		return RawFragment{Kind: KindListItem, Marker: "1.", Text: normalizeText(nodeText(n, false), false)}, true
	case bt == "table_row" || bt == "row":
		cells, header := rowCells(n)
		return RawFragment{Kind: KindTableRow, Cells: cells, HeaderRow: header, Text: normalizeText(strings.Join(cells, " | "), false)}, true
	case bt == "code" || bt == "code_block":
		return RawFragment{
			Kind: KindPreformatted,
			Lang: strings.TrimSpace(attrValue(n, "data-language")),
			Text: normalizeText(nodeText(n, true), true),
		}, true
	case bt == "note" || bt == "comment" || bt == "callout" || bt == "annotation":
		return RawFragment{Kind: KindNote, Text: normalizeText(nodeText(n, false), false)}, true
	default:
		// Unknown block types still carry user content; keep them as plain
		// fragments rather than dropping them.
		txt := normalizeText(nodeText(n, false), false)
		return RawFragment{Kind: KindPlain, Text: txt}, true
	}
}

func headingLevelFromType(n *html.Node, bt string) int {
	if v := attrValue(n, "data-level"); v != "" {
		if lvl, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return lvl
		}
	}
	// heading_2, heading2, h3 style suffixes
	trimmed := strings.TrimLeft(bt, "abcdefghijklmnopqrstuvwxyz_-")
	if trimmed != "" {
		if lvl, err := strconv.Atoi(trimmed); err == nil {
			return lvl
		}
	}
	if bt == "sub_header" {
		return 2
	}
	return 1
}

// rowCells pulls cell text out of a table_row block. Cells are either
// elements tagged data-cell(-index) or plain td/th children.
func rowCells(n *html.Node) ([]string, bool) {
	var cells []string
	header := false
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.ElementNode {
			name := strings.ToLower(cur.Data)
			if name == "td" || name == "th" || attrValue(cur, "data-cell-index") != "" || blockType(cur) == "cell" {
				cells = append(cells, normalizeText(nodeText(cur, false), false))
				if name == "th" || strings.EqualFold(attrValue(cur, "data-header"), "true") {
					header = true
				}
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return cells, header
}

// nodeText concatenates the text content under n. In pre mode whitespace is
// left exactly as captured; otherwise runs of whitespace collapse to single
// spaces.
func nodeText(n *html.Node, pre bool) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		switch cur.Type {
		case html.TextNode:
			b.WriteString(cur.Data)
		case html.ElementNode:
			name := strings.ToLower(cur.Data)
			if name == "script" || name == "style" || name == "noscript" {
				return
			}
			if !pre && (name == "br" || name == "div" || name == "p") && b.Len() > 0 {
				b.WriteString(" ")
			}
			if pre && name == "br" {
				b.WriteString("\n")
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	if pre {
		return b.String()
	}
	return collapseSpaces(b.String())
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}
