package document

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/richdoc/internal/types"
)

// word is a segment of a paragraph's text by Unicode word boundaries.
type word struct {
	start, end int
	isWord     bool
}

// words splits text at word boundaries. Segments made of punctuation or
// whitespace have isWord false.
func words(text string) []word {
	var out []word
	state := -1
	pos := 0
	for len(text) > 0 {
		var w string
		w, text, state = uniseg.FirstWordInString(text, state)
		n := utf8.RuneCountInString(w)
		r, _ := utf8.DecodeRuneInString(w)
		out = append(out, word{
			start:  pos,
			end:    pos + n,
			isWord: unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_',
		})
		pos += n
	}
	return out
}

// NextWordStart returns the start of the next word after pos. Past the last
// word of a paragraph it moves to the start of the next paragraph, or to the
// document end.
func (d *Document) NextWordStart(pos types.TextPos) types.TextPos {
	pos = d.ClampPos(pos)
	for _, w := range words(d.PlainText(pos.Index())) {
		if w.isWord && w.start > pos.Offset() {
			return types.NewTextPos(pos.Index(), w.start)
		}
	}
	if pos.Index()+1 < d.Size() {
		return types.NewTextPos(pos.Index()+1, 0)
	}
	return d.DocumentEnd()
}

// PreviousWordStart returns the start of the word before pos. From the start
// of a paragraph it moves to the last word of the previous one.
func (d *Document) PreviousWordStart(pos types.TextPos) types.TextPos {
	pos = d.ClampPos(pos)
	idx, off := pos.Index(), pos.Offset()
	if off == 0 {
		if idx == 0 {
			return types.Zero
		}
		idx, off = idx-1, d.ParagraphLength(idx-1)
	}
	last := 0
	for _, w := range words(d.PlainText(idx)) {
		if w.start >= off {
			break
		}
		if w.isWord {
			last = w.start
		}
	}
	return types.NewTextPos(idx, last)
}

// WordAt returns the bounds of the word touching pos. When pos is not on a
// word both bounds equal pos.
func (d *Document) WordAt(pos types.TextPos) (types.TextPos, types.TextPos) {
	pos = d.ClampPos(pos)
	off := pos.Offset()
	var prev word
	found := false
	for _, w := range words(d.PlainText(pos.Index())) {
		if w.isWord && w.start <= off && off < w.end {
			return types.NewTextPos(pos.Index(), w.start), types.NewTextPos(pos.Index(), w.end)
		}
		if w.isWord && w.end == off {
			prev, found = w, true
		}
	}
	if found {
		return types.NewTextPos(pos.Index(), prev.start), types.NewTextPos(pos.Index(), prev.end)
	}
	return pos, pos
}
