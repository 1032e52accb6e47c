//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

//
// THE LINE MODEL
//
// one TEI edition parses into a Document; each <ab> becomes a TextPart; each
// part is an ordered run of Lines; each Line an ordered run of Tokens; the
// whole model is built in a single pass and is read-only thereafter
//

// TokenKind - what a Token is; the Kind selects which of the other fields mean anything
type TokenKind int

const (
	GlyphTk TokenKind = iota
	GapTk
	SuppliedTk
	SpaceTk
	MilestoneTk
	AbbreviationTk
	GlyphTypeTk
	RenditionTk
	AddedTk
)

// GapReason - why text is absent at a <gap/>
type GapReason int

const (
	ReasonLost GapReason = iota
	ReasonIllegible
)

// BoundaryPos - where a lacuna sits inside its line; assigned when the line is frozen
type BoundaryPos int

const (
	MidLine BoundaryPos = iota
	LineStart
	LineEnd
)

// AddTarget - which neighboring line an <add> block is relocated to
type AddTarget int

const (
	InPlace AddTarget = iota
	PreviousLine
	NextLine
)

// UnknownLen - a gap/supplied/space whose extent the edition does not quantify
const UnknownLen = -1

// Token - one unit of line content; a tagged variant over the TokenKind values
type Token struct {
	Kind      TokenKind
	Ch        rune      // GlyphTk: the normalized majuscule
	Uncertain bool      // GlyphTk: render with a combining dot below
	Len       int       // GapTk/SuppliedTk/SpaceTk: rune count or UnknownLen
	Reason    GapReason // GapTk
	Pos       BoundaryPos
	Rend      string  // MilestoneTk/RenditionTk: the rend attribute
	Sym       string  // resolved output symbol; "" when the lookup missed
	Attr      string  // the raw attribute value, kept for error reporting
	Inner     []Token // RenditionTk/AddedTk
	Target    AddTarget
}

// Bracketed reports whether the token renders in square-bracket form and
// may therefore be folded into a truncated line edge. An illegible gap
// with a known extent renders as bare dashes and never folds.
func (t *Token) Bracketed() bool {
	switch t.Kind {
	case SuppliedTk:
		return true
	case GapTk:
		return t.Reason == ReasonLost || t.Len == UnknownLen
	}
	return false
}

// Line - one transcription line; mutable while tokens are appended, frozen at the line boundary
type Line struct {
	N        int // explicit lb number, or previous+1; 0 for relocated lines
	Tokens   []Token
	Inserted bool // true for lines created by relocating <add> content
}

// TextPart - the lines of one <ab> element
type TextPart struct {
	Lines []Line
}

// Document - one parsed edition, ready for the formatter
type Document struct {
	TM        int
	Name      string   // source filename without extension
	Languages []string // non-English xml:lang values found in the file
	Parts     []TextPart
}

// LineCount - total lines across all text parts
func (d *Document) LineCount() int {
	n := 0
	for i := range d.Parts {
		n += len(d.Parts[i].Lines)
	}
	return n
}
