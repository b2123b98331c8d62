package planner

import (
	"strings"

	"github.com/hyperifyio/canvasdeck/internal/classify"
)

// Options controls when a slide overflows. Zero values select defaults.
type Options struct {
	// MaxBlocks caps the number of visible blocks per slide.
	MaxBlocks int
	// MaxHeight caps the estimated rendered height per slide, measured in
	// text lines. Tables weigh their row count, code its line count.
	MaxHeight int
}

const (
	defaultMaxBlocks = 7
	defaultMaxHeight = 18
	// slideHeadingLevel is the deepest heading level that opens a new slide;
	// deeper headings stay inside the current slide body.
	slideHeadingLevel = 2
)

func (o Options) maxBlocks() int {
	if o.MaxBlocks > 0 {
		return o.MaxBlocks
	}
	return defaultMaxBlocks
}

func (o Options) maxHeight() int {
	if o.MaxHeight > 0 {
		return o.MaxHeight
	}
	return defaultMaxHeight
}

// Slide is the ordered content assigned to one output slide.
type Slide struct {
	// Title comes from the heading that opened the slide; continuation
	// slides have none.
	Title string
	// TitleLevel is the level of the opening heading, zero when untitled.
	TitleLevel int
	Blocks     []classify.Block
	// Notes holds speaker notes attached in encounter order, separated by
	// blank lines.
	Notes string
	// Continuation marks a slide opened by overflow rather than a heading.
	Continuation bool
}

// Plan groups a flat block sequence into slides. It is a pure function:
// the same blocks and options always produce the identical deck. An empty
// input yields an empty deck; the caller decides how loudly to warn.
func Plan(blocks []classify.Block, opt Options) []Slide {
	var slides []Slide
	var cur *Slide

	open := func(title string, level int, continuation bool) {
		slides = append(slides, Slide{Title: title, TitleLevel: level, Continuation: continuation})
		cur = &slides[len(slides)-1]
	}
	var pendingNotes []string
	attachNote := func(text string) {
		if cur == nil {
			pendingNotes = append(pendingNotes, text)
			return
		}
		if cur.Notes != "" {
			cur.Notes += "\n\n"
		}
		cur.Notes += text
	}
	flushPending := func() {
		for _, n := range pendingNotes {
			attachNote(n)
		}
		pendingNotes = nil
	}

	for _, b := range blocks {
		switch {
		case b.Kind == classify.KindNote:
			attachNote(b.Text)
		case b.Kind == classify.KindHeading && b.Level <= slideHeadingLevel:
			open(b.Text, b.Level, false)
			flushPending()
		default:
			w := weight(b)
			switch {
			case cur == nil:
				open("", 0, false)
				flushPending()
			case len(cur.Blocks) >= opt.maxBlocks():
				open("", 0, true)
			case len(cur.Blocks) > 0 && curHeight(cur)+w > opt.maxHeight():
				// Overflow. Tables and code are atomic: they are never
				// split, so an oversized one simply owns the fresh slide.
				open("", 0, true)
			}
			cur.Blocks = append(cur.Blocks, b)
		}
	}
	return slides
}

func curHeight(s *Slide) int {
	h := 0
	for _, b := range s.Blocks {
		h += weight(b)
	}
	return h
}

// weight estimates the rendered height of a block in text lines.
func weight(b classify.Block) int {
	switch b.Kind {
	case classify.KindHeading:
		return 2
	case classify.KindList:
		return max(1, len(b.Items))
	case classify.KindTable:
		return len(b.Rows) + 1
	case classify.KindCode:
		return max(1, strings.Count(b.Literal, "\n")+1)
	default:
		// Rough wrap estimate for body text.
		return 1 + len(b.Text)/90
	}
}

// HasNotes reports whether the block sequence carries any speaker notes.
// Used by callers to warn when an empty deck would drop notes.
func HasNotes(blocks []classify.Block) bool {
	for _, b := range blocks {
		if b.Kind == classify.KindNote {
			return true
		}
	}
	return false
}
