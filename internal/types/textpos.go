// internal/types/textpos.go
package types

import (
	"fmt"
	"math"
)

// MaxOffset stands for "the end of the paragraph". It is clamped against the
// paragraph's actual length where it is used.
const MaxOffset = math.MaxInt

// TextPos identifies a location in a document.
// index is the 0-based paragraph index, offset the 0-based character (rune)
// offset within that paragraph's plain text. charIndex and leading name the
// character the position is attached to, which matters when a position sits
// on a style boundary and a caller needs the attributes of the character
// before or after it.
type TextPos struct {
	index     int
	offset    int
	charIndex int
	leading   bool
}

var (
	// Zero is the start of any document.
	Zero = TextPos{leading: true}

	// NoPos is returned by mutating operations that did nothing because the
	// document is not editable.
	NoPos = TextPos{index: -1, offset: -1, charIndex: -1}
)

// NewTextPos returns a position leading the character at offset.
func NewTextPos(index, offset int) TextPos {
	return TextPos{index: index, offset: offset, charIndex: offset, leading: true}
}

// Leading returns the position before the character at charIndex.
func Leading(index, charIndex int) TextPos {
	return TextPos{index: index, offset: charIndex, charIndex: charIndex, leading: true}
}

// Trailing returns the position after the character at charIndex.
func Trailing(index, charIndex int) TextPos {
	return TextPos{index: index, offset: charIndex + 1, charIndex: charIndex, leading: false}
}

func (p TextPos) Index() int     { return p.index }
func (p TextPos) Offset() int    { return p.offset }
func (p TextPos) CharIndex() int { return p.charIndex }
func (p TextPos) IsLeading() bool {
	return p.leading
}

// IsValid reports whether p is not NoPos and has non-negative coordinates.
func (p TextPos) IsValid() bool {
	return p.index >= 0 && p.offset >= 0
}

// Compare orders positions by (index, offset). The character bias does not
// take part in ordering.
func (p TextPos) Compare(o TextPos) int {
	switch {
	case p.index < o.index:
		return -1
	case p.index > o.index:
		return 1
	case p.offset < o.offset:
		return -1
	case p.offset > o.offset:
		return 1
	}
	return 0
}

func (p TextPos) Before(o TextPos) bool { return p.Compare(o) < 0 }
func (p TextPos) After(o TextPos) bool  { return p.Compare(o) > 0 }

// SameLocation reports whether p and o address the same (index, offset).
func (p TextPos) SameLocation(o TextPos) bool { return p.Compare(o) == 0 }

// Min returns the earlier of two positions.
func Min(a, b TextPos) TextPos {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of two positions.
func Max(a, b TextPos) TextPos {
	if b.After(a) {
		return b
	}
	return a
}

func (p TextPos) String() string {
	if p.leading {
		return fmt.Sprintf("TextPos{%d,%d}", p.index, p.offset)
	}
	return fmt.Sprintf("TextPos{%d,%d,trailing:%d}", p.index, p.offset, p.charIndex)
}
