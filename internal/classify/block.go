package classify

// Kind tags a Block variant.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindList
	KindTable
	KindCode
	KindNote
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	case KindCode:
		return "code"
	case KindNote:
		return "note"
	default:
		return "paragraph"
	}
}

// Block is one classified unit of document content. Kind selects the variant;
// only the fields of that variant are meaningful.
type Block struct {
	Kind Kind

	// Heading: Level 1..6. Paragraph, Heading, Note: Text.
	Level int
	Text  string

	// List
	Ordered bool
	Items   []string

	// Table. Rows is rectangular: every row has the same column count as the
	// first row. Ragged input rows are right-padded with empty cells and
	// rows longer than the first are truncated, never dropped.
	Rows      [][]string
	HeaderRow bool

	// Code. Literal preserves original line breaks and interior whitespace
	// exactly; only line endings are normalized.
	Lang    string
	Literal string
}

func Heading(level int, text string) Block {
	return Block{Kind: KindHeading, Level: level, Text: text}
}

func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

func List(ordered bool, items []string) Block {
	return Block{Kind: KindList, Ordered: ordered, Items: items}
}

func Table(rows [][]string, headerRow bool) Block {
	return Block{Kind: KindTable, Rows: rows, HeaderRow: headerRow}
}

func Code(lang, literal string) Block {
	return Block{Kind: KindCode, Lang: lang, Literal: literal}
}

func Note(text string) Block {
	return Block{Kind: KindNote, Text: text}
}
