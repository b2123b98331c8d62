package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FragmentKind is the structural role a strategy observed for a fragment.
// It is a hint for the classifier, not a final classification.
type FragmentKind int

const (
	KindPlain FragmentKind = iota
	KindHeading
	KindListItem
	KindTableRow
	KindPreformatted
	KindNote
)

func (k FragmentKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list-item"
	case KindTableRow:
		return "table-row"
	case KindPreformatted:
		return "preformatted"
	case KindNote:
		return "note"
	default:
		return "plain"
	}
}

// RawFragment is one raw, unclassified unit of captured content. Fragments
// are created by a strategy and never mutated afterwards.
type RawFragment struct {
	// Index is the fragment's position in document order.
	Index int
	// Text is the fragment's content with line endings normalized to \n and
	// Unicode normalized to NFC. For preformatted fragments interior
	// whitespace is untouched.
	Text string
	Kind FragmentKind
	// HeadingLevel is set for KindHeading fragments. May be out of range;
	// the classifier clamps it.
	HeadingLevel int
	// Marker is the raw list marker observed for KindListItem, e.g. "-" or "3.".
	Marker string
	// Cells holds the row's cell text for KindTableRow fragments.
	Cells []string
	// HeaderRow marks a KindTableRow whose cells were header cells.
	HeaderRow bool
	// Lang is an optional language hint for KindPreformatted fragments.
	Lang string
}

// normalizeText applies NFC and line-ending normalization. When pre is false,
// tabs and carriage returns inside the text are treated as plain spacing; when
// pre is true, interior whitespace is kept exactly as captured.
func normalizeText(s string, pre bool) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if !pre {
		s = strings.TrimSpace(s)
	}
	return s
}
