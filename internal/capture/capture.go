package capture

import (
	"errors"
	"time"
)

// ErrUnavailable wraps every failure to obtain a page snapshot so callers can
// tell "could not capture" apart from "captured but could not extract".
var ErrUnavailable = errors.New("capture unavailable")

// Capture is one snapshot of a canvas page. At least one of HTML or Text is
// populated depending on how the snapshot was taken. A Capture is never
// mutated after creation; extraction strategies read it only.
type Capture struct {
	// URL is the canvas page the snapshot was taken from.
	URL string
	// HTML is the rendered page markup, when available.
	HTML []byte
	// Text is a plain-text dump of the page, when available. Some capture
	// collaborators can only produce visible text.
	Text string
	// FetchedAt records when the snapshot was taken.
	FetchedAt time.Time
}

// HasHTML reports whether the snapshot carries markup worth parsing.
func (c *Capture) HasHTML() bool {
	return c != nil && len(c.HTML) > 0
}

// HasText reports whether the snapshot carries a usable text dump.
func (c *Capture) HasText() bool {
	return c != nil && c.Text != ""
}
