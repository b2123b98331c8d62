package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperifyio/canvasdeck/internal/capture"
)

// HTMLBlockStrategy is the generic fallback for captures without canvas
// block markup: a plain walk over standard HTML block elements, preferring
// <main> or <article> over <body> and skipping obvious boilerplate like
// <nav> and <footer>.
type HTMLBlockStrategy struct{}

func (s *HTMLBlockStrategy) Name() string { return "html-blocks" }

func (s *HTMLBlockStrategy) Extract(c *capture.Capture) ([]RawFragment, error) {
	if !c.HasHTML() {
		return nil, errors.New("capture has no HTML")
	}
	root, err := html.Parse(bytes.NewReader(c.HTML))
	if err != nil || root == nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	content := findFirst(root, "main")
	if content == nil {
		content = findFirst(root, "article")
	}
	if content == nil {
		content = findFirst(root, "body")
	}
	if content == nil {
		return nil, errors.New("no body element")
	}
	var frags []RawFragment
	walkBlocks(content, &frags)
	return reindex(frags), nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}

func walkBlocks(n *html.Node, out *[]RawFragment) {
	if n.Type == html.ElementNode {
		name := strings.ToLower(n.Data)
		switch name {
		case "script", "style", "noscript", "nav", "footer", "iframe":
			return
		}
		if isAnnotationNode(n) {
			if txt := normalizeText(nodeText(n, false), false); txt != "" {
				*out = append(*out, RawFragment{Kind: KindNote, Text: txt})
			}
			return
		}
		switch name {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			*out = append(*out, RawFragment{
				Kind:         KindHeading,
				HeadingLevel: int(name[1] - '0'),
				Text:         normalizeText(nodeText(n, false), false),
			})
			return
		case "li":
			marker := "-"
			if p := n.Parent; p != nil && strings.EqualFold(p.Data, "ol") {
				marker = "1."
			}
			*out = append(*out, RawFragment{Kind: KindListItem, Marker: marker, Text: normalizeText(nodeText(n, false), false)})
			return
		case "tr":
			cells, header := rowCells(n)
			if len(cells) > 0 {
				*out = append(*out, RawFragment{Kind: KindTableRow, Cells: cells, HeaderRow: header, Text: normalizeText(strings.Join(cells, " | "), false)})
			}
			return
		case "pre":
			*out = append(*out, RawFragment{
				Kind: KindPreformatted,
				Lang: codeLanguage(n),
				Text: normalizeText(strings.Trim(nodeText(n, true), "\n"), true),
			})
			return
		case "p", "blockquote", "dt", "dd", "figcaption":
			if txt := normalizeText(nodeText(n, false), false); txt != "" {
				*out = append(*out, RawFragment{Kind: KindPlain, Text: txt})
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkBlocks(c, out)
	}
}

// isAnnotationNode reports whether the element is explicitly marked as an
// author or speaker annotation. Only explicit markers count; regular asides
// and quotes stay visible content.
func isAnnotationNode(n *html.Node) bool {
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if key != "id" && key != "class" && key != "role" && !strings.HasPrefix(key, "data-") {
			continue
		}
		val := strings.ToLower(a.Val)
		for _, marker := range []string{"speaker-note", "presenter-note", "author-note", "annotation", "doc-comment"} {
			if strings.Contains(val, marker) {
				return true
			}
		}
		if key == "role" && val == "note" {
			return true
		}
	}
	return false
}

// codeLanguage pulls a language hint from class="language-x" on the pre
// element or its code child.
func codeLanguage(n *html.Node) string {
	check := func(node *html.Node) string {
		for _, a := range node.Attr {
			if !strings.EqualFold(a.Key, "class") {
				continue
			}
			for _, cls := range strings.Fields(a.Val) {
				if lang, ok := strings.CutPrefix(strings.ToLower(cls), "language-"); ok {
					return lang
				}
				if lang, ok := strings.CutPrefix(strings.ToLower(cls), "lang-"); ok {
					return lang
				}
			}
		}
		return ""
	}
	if lang := check(n); lang != "" {
		return lang
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, "code") {
			if lang := check(c); lang != "" {
				return lang
			}
		}
	}
	return ""
}
