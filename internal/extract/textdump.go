package extract

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperifyio/canvasdeck/internal/capture"
)

// TextDumpStrategy is the last-resort, most permissive strategy: a
// line-oriented scan over the plain-text dump of the page. When the capture
// has no text dump it derives one from the HTML by stripping tags, so a
// capture that defeated both DOM strategies still yields content instead of
// nothing.
type TextDumpStrategy struct{}

func (s *TextDumpStrategy) Name() string { return "text-dump" }

var (
	headingLineRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletLineRe  = regexp.MustCompile(`^([-*•])\s+(.+)$`)
	numberLineRe  = regexp.MustCompile(`^(\d{1,3})[.)]\s+(.+)$`)
	noteLineRe    = regexp.MustCompile(`(?i)^(?:note|notes|speaker notes?|presenter notes?)\s*:\s*(.+)$`)
)

func (s *TextDumpStrategy) Extract(c *capture.Capture) ([]RawFragment, error) {
	text := ""
	if c.HasText() {
		text = c.Text
	} else if c.HasHTML() {
		text = visibleText(c.HTML)
	}
	if strings.TrimSpace(text) == "" {
		if c.HasText() || c.HasHTML() {
			// Valid capture of an empty document.
			return nil, nil
		}
		return nil, errors.New("capture has no text or HTML")
	}
	text = normalizeText(text, true)
	lines := strings.Split(text, "\n")

	var frags []RawFragment
	var para []string
	var pre []string
	flushPara := func() {
		if len(para) > 0 {
			frags = append(frags, RawFragment{Kind: KindPlain, Text: strings.Join(para, " ")})
			para = nil
		}
	}
	flushPre := func() {
		if len(pre) > 0 {
			frags = append(frags, RawFragment{Kind: KindPreformatted, Text: strings.Join(pre, "\n")})
			pre = nil
		}
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flushPara()
			flushPre()
			continue
		}
		if isIndentedLine(line) {
			flushPara()
			pre = append(pre, line)
			continue
		}
		flushPre()
		switch {
		case headingLineRe.MatchString(trimmed):
			flushPara()
			m := headingLineRe.FindStringSubmatch(trimmed)
			frags = append(frags, RawFragment{Kind: KindHeading, HeadingLevel: len(m[1]), Text: collapseSpaces(m[2])})
		case bulletLineRe.MatchString(trimmed):
			flushPara()
			m := bulletLineRe.FindStringSubmatch(trimmed)
			frags = append(frags, RawFragment{Kind: KindListItem, Marker: m[1], Text: collapseSpaces(m[2])})
		case numberLineRe.MatchString(trimmed):
			flushPara()
			m := numberLineRe.FindStringSubmatch(trimmed)
			frags = append(frags, RawFragment{Kind: KindListItem, Marker: m[1] + ".", Text: collapseSpaces(m[2])})
		case noteLineRe.MatchString(trimmed):
			flushPara()
			m := noteLineRe.FindStringSubmatch(trimmed)
			frags = append(frags, RawFragment{Kind: KindNote, Text: collapseSpaces(m[1])})
		case looksLikeTableRow(trimmed):
			flushPara()
			cells := splitPipeRow(trimmed)
			if isDividerRow(cells) {
				// Markdown-style |---|---| separators mark the row above as
				// a header; they carry no content themselves.
				if len(frags) > 0 && frags[len(frags)-1].Kind == KindTableRow {
					frags[len(frags)-1].HeaderRow = true
				}
				continue
			}
			frags = append(frags, RawFragment{Kind: KindTableRow, Cells: cells, Text: collapseSpaces(trimmed)})
		default:
			para = append(para, collapseSpaces(trimmed))
		}
	}
	flushPara()
	flushPre()
	return reindex(frags), nil
}

func isIndentedLine(line string) bool {
	return strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ")
}

func looksLikeTableRow(line string) bool {
	return strings.Count(line, "|") >= 2
}

func splitPipeRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, collapseSpaces(p))
	}
	return cells
}

func isDividerRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if strings.Trim(c, ":- ") != "" {
			return false
		}
	}
	return true
}

// visibleText strips tags from HTML, keeping rough line structure for block
// elements so the line scan above still has boundaries to work with.
func visibleText(input []byte) string {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		return ""
	}
	body := findFirst(root, "body")
	if body == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "script", "style", "noscript", "nav", "footer", "iframe":
				return
			case "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "pre", "br":
				b.WriteString("\n")
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "p", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "pre":
				b.WriteString("\n")
			}
		}
	}
	walk(body)
	return b.String()
}
