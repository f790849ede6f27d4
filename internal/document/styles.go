package document

import (
	"github.com/bethropolis/richdoc/internal/event"
	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/types"
)

// ApplyStyle combines attrs into the style of [start, end). Character
// attributes go to the runs in range; paragraph attributes go to every
// paragraph the range touches. It reports whether anything changed and
// notifies listeners only then.
func (d *Document) ApplyStyle(start, end types.TextPos, attrs *style.Attrs) (bool, error) {
	return d.restyle(start, end, attrs, true)
}

// SetStyle replaces the character style of [start, end) with the character
// part of attrs. Paragraph attributes are replaced only when attrs carries
// any.
func (d *Document) SetStyle(start, end types.TextPos, attrs *style.Attrs) (bool, error) {
	return d.restyle(start, end, attrs, false)
}

func (d *Document) restyle(start, end types.TextPos, attrs *style.Attrs, merge bool) (bool, error) {
	if !d.editable {
		logger.DebugTagf("document", "restyle %v-%v ignored: not editable", start, end)
		return false, nil
	}
	start, err := d.checkPos(start)
	if err != nil {
		return false, err
	}
	end, err = d.checkPos(end)
	if err != nil {
		return false, err
	}
	if end.Before(start) {
		start, end = end, start
	}

	char, para := attrs.Split()
	changed := false
	for i := start.Index(); i <= end.Index(); i++ {
		p := d.paragraphs[i]
		if p.IsNode() {
			continue
		}
		from, to := 0, types.MaxOffset
		if i == start.Index() {
			from = start.Offset()
		}
		if i == end.Index() {
			to = end.Offset()
		}
		if !merge || !char.IsEmpty() {
			if p.ApplyStyle(from, to, char, merge) {
				changed = true
			}
		}
		if !para.IsEmpty() {
			next := para
			if merge {
				next = p.attrs.Combine(para)
			}
			if p.setAttrs(next) {
				changed = true
			}
		}
	}

	if changed {
		d.events.Dispatch(event.TypeStyleChanged, event.StyleChange{Start: start, End: end})
	}
	return changed, nil
}

// StyleAttrs returns the combined paragraph and character style at pos. The
// character is the one pos is attached to: the character after a leading
// position, the one before a trailing position.
func (d *Document) StyleAttrs(pos types.TextPos) *style.Attrs {
	clamped := d.ClampPos(pos)
	p := d.paragraphs[clamped.Index()]
	ci := pos.CharIndex()
	if !clamped.SameLocation(pos) {
		ci = clamped.Offset()
	}
	return d.cache.Intern(p.attrs.Combine(p.StyleInfo(ci)))
}

// ParagraphAttrs returns the attributes of paragraph index.
func (d *Document) ParagraphAttrs(index int) *style.Attrs {
	if p := d.Paragraph(index); p != nil {
		return p.attrs
	}
	return style.Empty
}
