// Package segment defines the units of styled content streamed into and out
// of a document.
package segment

import (
	"fmt"
	"strings"

	"github.com/bethropolis/richdoc/internal/style"
)

// Kind tags the variant a Segment holds. The set is closed; consumers switch
// over every kind.
type Kind uint8

const (
	KindText Kind = iota
	KindLineBreak
	KindInlineNode
	KindParagraph
	KindParagraphAttributes
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindLineBreak:
		return "line-break"
	case KindInlineNode:
		return "inline-node"
	case KindParagraph:
		return "paragraph"
	case KindParagraphAttributes:
		return "paragraph-attributes"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Generator lazily builds an embedded object. The document only stores it;
// the rendering layer calls it.
type Generator func() any

// StyleInfo describes the style of a text segment, either already resolved to
// an attribute set or as a direct style string plus style names for a
// resolver to interpret.
type StyleInfo struct {
	Attrs  *style.Attrs
	Direct string
	Names  []string
}

// IsResolved reports whether Attrs is set.
func (si StyleInfo) IsResolved() bool { return si.Attrs != nil }

// IsZero reports whether no style was given at all.
func (si StyleInfo) IsZero() bool {
	return si.Attrs == nil && si.Direct == "" && len(si.Names) == 0
}

// Segment is one unit of streamed content.
type Segment struct {
	kind  Kind
	text  string
	style StyleInfo
	gen   Generator
	attrs *style.Attrs
}

// Text returns a text segment. text must not contain line breaks; use
// FromText to split arbitrary strings.
func Text(text string, si StyleInfo) Segment {
	return Segment{kind: KindText, text: text, style: si}
}

// StyledText returns a text segment with a resolved style.
func StyledText(text string, attrs *style.Attrs) Segment {
	return Text(text, StyleInfo{Attrs: attrs})
}

// LineBreak returns a line break segment.
func LineBreak() Segment { return Segment{kind: KindLineBreak} }

// InlineNode returns an embedded object occupying one character.
func InlineNode(gen Generator) Segment {
	return Segment{kind: KindInlineNode, gen: gen}
}

// Paragraph returns a paragraph wholly occupied by an embedded object.
func Paragraph(gen Generator) Segment {
	return Segment{kind: KindParagraph, gen: gen}
}

// ParagraphAttributes returns a segment setting the current paragraph's
// attributes.
func ParagraphAttributes(attrs *style.Attrs) Segment {
	return Segment{kind: KindParagraphAttributes, attrs: attrs}
}

func (s Segment) Kind() Kind                  { return s.kind }
func (s Segment) IsText() bool                { return s.kind == KindText }
func (s Segment) IsLineBreak() bool           { return s.kind == KindLineBreak }
func (s Segment) IsInlineNode() bool          { return s.kind == KindInlineNode }
func (s Segment) IsParagraph() bool           { return s.kind == KindParagraph }
func (s Segment) IsParagraphAttributes() bool { return s.kind == KindParagraphAttributes }

// Text is the segment's text; empty for non-text kinds.
func (s Segment) Text() string { return s.text }

// Style is the text segment's style.
func (s Segment) Style() StyleInfo { return s.style }

// Generator is the embedded object factory for node kinds.
func (s Segment) Generator() Generator { return s.gen }

// Attrs is the payload of a paragraph attributes segment.
func (s Segment) Attrs() *style.Attrs { return s.attrs }

func (s Segment) String() string {
	switch s.kind {
	case KindText:
		if s.style.Attrs != nil && !s.style.Attrs.IsEmpty() {
			return fmt.Sprintf("text(%q %v)", s.text, s.style.Attrs)
		}
		return fmt.Sprintf("text(%q)", s.text)
	case KindParagraphAttributes:
		return fmt.Sprintf("paragraph-attributes(%v)", s.attrs)
	}
	return s.kind.String()
}

// PlainText concatenates the text of segs, writing "\n" for line breaks.
// Embedded objects contribute nothing.
func PlainText(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		switch s.kind {
		case KindText:
			sb.WriteString(s.text)
		case KindLineBreak:
			sb.WriteByte('\n')
		case KindInlineNode, KindParagraph, KindParagraphAttributes:
		}
	}
	return sb.String()
}
