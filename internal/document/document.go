// Package document implements the editable rich-text model: paragraphs of
// styled runs, a replace operation streaming segments in, export streaming
// them out, live markers and change notification.
//
// A Document is not safe for concurrent use. One goroutine owns all
// mutation; readers must not run while it writes.
package document

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/richdoc/internal/event"
	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/types"
)

// Document is an ordered sequence of paragraphs. It always holds at least one.
type Document struct {
	paragraphs []*Paragraph
	cache      *style.Cache
	editable   bool
	resolver   StyleResolver
	events     *event.Manager
	markers    []*Marker
	listeners  []listenerEntry
}

// Option configures a new Document.
type Option func(*Document)

// WithEditable sets the initial editable flag. Documents are editable by
// default.
func WithEditable(editable bool) Option {
	return func(d *Document) { d.editable = editable }
}

// WithResolver sets the resolver used when Replace is given none.
func WithResolver(r StyleResolver) Option {
	return func(d *Document) { d.resolver = r }
}

// WithText seeds the document with unstyled text.
func WithText(text string) Option {
	return func(d *Document) {
		if _, _, err := d.replace(nil, types.Zero, types.Zero, segment.FromText(text, segment.StyleInfo{})); err != nil {
			logger.Warnf("document: seeding text failed: %v", err)
		}
	}
}

// New creates a document holding one empty paragraph.
func New(opts ...Option) *Document {
	cache := style.NewCache()
	d := &Document{
		paragraphs: []*Paragraph{NewParagraph(cache)},
		cache:      cache,
		editable:   true,
		events:     event.NewManager(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Size returns the number of paragraphs.
func (d *Document) Size() int { return len(d.paragraphs) }

// Paragraph returns the paragraph at index, or nil when out of range.
func (d *Document) Paragraph(index int) *Paragraph {
	if index < 0 || index >= len(d.paragraphs) {
		return nil
	}
	return d.paragraphs[index]
}

// PlainText returns the text of the paragraph at index.
func (d *Document) PlainText(index int) string {
	if p := d.Paragraph(index); p != nil {
		return p.PlainText()
	}
	return ""
}

// ParagraphLength returns the length of the paragraph at index.
func (d *Document) ParagraphLength(index int) int {
	if p := d.Paragraph(index); p != nil {
		return p.Len()
	}
	return 0
}

// Text returns the whole document's plain text, paragraphs joined by "\n".
func (d *Document) Text() string {
	parts := make([]string, len(d.paragraphs))
	for i, p := range d.paragraphs {
		parts[i] = p.PlainText()
	}
	return strings.Join(parts, "\n")
}

// DocumentEnd returns the position after the last character.
func (d *Document) DocumentEnd() types.TextPos {
	last := len(d.paragraphs) - 1
	return d.paragraphs[last].end(last)
}

// EndOfParagraph returns the position at the end of paragraph index.
func (d *Document) EndOfParagraph(index int) types.TextPos {
	index = max(0, min(index, len(d.paragraphs)-1))
	return d.paragraphs[index].end(index)
}

// ClampPos moves pos into the document: a negative index maps to the start,
// an index past the last paragraph to the end, and the offset is clamped to
// the paragraph length.
func (d *Document) ClampPos(pos types.TextPos) types.TextPos {
	switch {
	case pos.Index() < 0:
		return types.Zero
	case pos.Index() >= len(d.paragraphs):
		return d.DocumentEnd()
	}
	n := d.paragraphs[pos.Index()].Len()
	if pos.Offset() >= 0 && pos.Offset() <= n {
		return pos
	}
	return types.NewTextPos(pos.Index(), max(0, min(pos.Offset(), n)))
}

// IsEditable reports whether mutations are allowed.
func (d *Document) IsEditable() bool { return d.editable }

// SetEditable flips the editable flag.
func (d *Document) SetEditable(editable bool) {
	if d.editable == editable {
		return
	}
	d.editable = editable
	d.events.Dispatch(event.TypeEditableChanged, event.EditableChange{Editable: editable})
}

// StyleCache returns the document's style dedup cache.
func (d *Document) StyleCache() *style.Cache { return d.cache }

// Events returns the manager change events are dispatched on.
func (d *Document) Events() *event.Manager { return d.events }

// checkPos validates pos and clamps its offset to the paragraph length.
func (d *Document) checkPos(pos types.TextPos) (types.TextPos, error) {
	if pos.Index() < 0 || pos.Index() >= len(d.paragraphs) {
		return pos, fmt.Errorf("%w: paragraph %d of %d", ErrInvalidPosition, pos.Index(), len(d.paragraphs))
	}
	if pos.Offset() < 0 {
		return pos, fmt.Errorf("%w: negative offset %d", ErrInvalidPosition, pos.Offset())
	}
	if n := d.paragraphs[pos.Index()].Len(); pos.Offset() > n {
		return types.NewTextPos(pos.Index(), n), nil
	}
	return pos, nil
}

func (d *Document) checkRange(start, end types.TextPos) (types.TextPos, types.TextPos, error) {
	start, err := d.checkPos(start)
	if err != nil {
		return start, end, err
	}
	end, err = d.checkPos(end)
	if err != nil {
		return start, end, err
	}
	if start.After(end) {
		return start, end, fmt.Errorf("%w: %v > %v", ErrInvalidRange, start, end)
	}
	return start, end, nil
}

// ReplaceText replaces [start, end) with unstyled text, which inherits the
// style of the character before start.
func (d *Document) ReplaceText(start, end types.TextPos, text string) (types.TextPos, error) {
	return d.Replace(nil, start, end, segment.FromText(text, segment.StyleInfo{}))
}

// RemoveRegion deletes [start, end), joining paragraphs when the range
// spans line breaks.
func (d *Document) RemoveRegion(start, end types.TextPos) (types.TextPos, error) {
	return d.Replace(nil, start, end, segment.FromSlice())
}

// Replace removes [start, end) and streams in in its place. Text segments
// without a resolved style are resolved through resolver (or the document's
// own resolver when nil); segments with no style at all take the style of
// the character before them. It returns the position after the inserted
// content.
//
// On a document that is not editable Replace does nothing and returns
// types.NoPos with a nil error. Invalid positions, an inverted range and
// unresolvable styles are reported before anything is changed.
func (d *Document) Replace(resolver StyleResolver, start, end types.TextPos, in segment.Input) (types.TextPos, error) {
	if !d.editable {
		logger.DebugTagf("document", "replace %v-%v ignored: not editable", start, end)
		return types.NoPos, nil
	}
	change, pos, err := d.replace(resolver, start, end, in)
	if err != nil {
		return types.NoPos, err
	}
	if change != nil {
		d.updateMarkers(*change)
		d.events.Dispatch(event.TypeTextChanged, *change)
	}
	return pos, nil
}

// pending is an input segment with its character style resolved. A nil
// attrs on a text or inline node segment means "inherit".
type pending struct {
	seg   segment.Segment
	attrs *style.Attrs
}

func (d *Document) prepare(resolver StyleResolver, in segment.Input) ([]pending, error) {
	if resolver == nil {
		resolver = d.resolver
	}
	var out []pending
	for {
		seg, ok := in.Next()
		if !ok {
			return out, nil
		}
		p := pending{seg: seg}
		switch seg.Kind() {
		case segment.KindText:
			if strings.ContainsRune(seg.Text(), '\n') {
				return nil, ErrLineBreakInText
			}
			si := seg.Style()
			switch {
			case si.IsResolved():
				p.attrs, _ = si.Attrs.Split()
			case si.IsZero():
			case resolver == nil:
				logger.DebugTagf("document", "no resolver for style %q %v; inheriting", si.Direct, si.Names)
			default:
				attrs, err := resolver.Resolve(si.Direct, si.Names)
				if err != nil {
					return nil, fmt.Errorf("resolving style %q %v: %w", si.Direct, si.Names, err)
				}
				p.attrs, _ = attrs.Split()
			}
		case segment.KindParagraphAttributes:
			_, p.attrs = seg.Attrs().Split()
		case segment.KindLineBreak, segment.KindInlineNode, segment.KindParagraph:
		}
		out = append(out, p)
	}
}

// replace does the work of Replace without the editable check, markers or
// notification. It returns a nil change when nothing happened.
func (d *Document) replace(resolver StyleResolver, start, end types.TextPos, in segment.Input) (*event.TextChange, types.TextPos, error) {
	start, end, err := d.checkRange(start, end)
	if err != nil {
		return nil, types.NoPos, err
	}
	end = d.skipNodeEnd(start, end)

	segs, err := d.prepare(resolver, in)
	if err != nil {
		return nil, types.NoPos, err
	}
	if start.SameLocation(end) && len(segs) == 0 {
		return nil, start, nil
	}

	if !start.SameLocation(end) {
		d.removeRegion(start, end)
	}

	idx, off := start.Index(), start.Offset()
	for _, s := range segs {
		p := d.paragraphs[idx]
		switch s.seg.Kind() {
		case segment.KindText:
			text := s.seg.Text()
			if text == "" {
				continue
			}
			if p.IsNode() {
				idx, off = d.insertParagraph(idx+1, NewParagraph(d.cache)), 0
				p = d.paragraphs[idx]
			}
			attrs := s.attrs
			if attrs == nil {
				attrs = p.StyleInfo(off - 1)
			}
			if err := p.InsertText(off, text, attrs); err != nil {
				return nil, types.NoPos, err
			}
			off += utf8.RuneCountInString(text)

		case segment.KindInlineNode:
			if p.IsNode() {
				idx, off = d.insertParagraph(idx+1, NewParagraph(d.cache)), 0
				p = d.paragraphs[idx]
			}
			attrs := s.attrs
			if attrs == nil {
				attrs = p.StyleInfo(off - 1)
			}
			if err := p.InsertInlineNode(off, s.seg.Generator(), attrs); err != nil {
				return nil, types.NoPos, err
			}
			off++

		case segment.KindLineBreak:
			var next *Paragraph
			if p.IsNode() {
				next = NewParagraph(d.cache)
			} else if next, err = p.InsertLineBreak(off); err != nil {
				return nil, types.NoPos, err
			}
			idx, off = d.insertParagraph(idx+1, next), 0

		case segment.KindParagraph:
			node := NewNodeParagraph(d.cache, s.seg.Generator())
			switch {
			case !p.IsNode() && p.Len() == 0:
				d.paragraphs[idx] = node
			case p.IsNode() || off == p.Len():
				idx = d.insertParagraph(idx+1, node)
			case off == 0:
				// the cursor stays in front of the text that followed it
				d.insertParagraph(idx, node)
				idx++
			default:
				tail, err := p.InsertLineBreak(off)
				if err != nil {
					return nil, types.NoPos, err
				}
				d.insertParagraph(idx+1, node)
				idx = d.insertParagraph(idx+2, tail)
			}
			off = 0

		case segment.KindParagraphAttributes:
			if !p.IsNode() {
				p.setAttrs(s.attrs)
			}
		}
	}

	change := &event.TextChange{
		Start:      start,
		End:        end,
		LinesAdded: idx - start.Index(),
	}
	if change.LinesAdded == 0 {
		change.CharsAddedTop = off - start.Offset()
	} else {
		change.CharsAddedTop = max(0, d.paragraphs[start.Index()].Len()-start.Offset())
		change.CharsAddedBottom = off
	}
	logger.DebugTagf("document", "replaced %v-%v: top=%d lines=%d bottom=%d",
		start, end, change.CharsAddedTop, change.LinesAdded, change.CharsAddedBottom)
	return change, types.NewTextPos(idx, off), nil
}

// skipNodeEnd pulls a range end that sits on a node paragraph back to the
// end of the paragraph before it. A node paragraph cannot be joined onto a
// text paragraph, so it survives the removal.
func (d *Document) skipNodeEnd(start, end types.TextPos) types.TextPos {
	for end.Index() > start.Index() && d.paragraphs[end.Index()].IsNode() {
		end = d.EndOfParagraph(end.Index() - 1)
	}
	return end
}

func (d *Document) insertParagraph(index int, p *Paragraph) int {
	d.paragraphs = slices.Insert(d.paragraphs, index, p)
	return index
}

// removeRegion deletes [start, end) on a validated, ordered range. Within
// one paragraph it delegates to the paragraph. Across paragraphs it trims
// the head of the end paragraph and the tail of the start paragraph, joins
// the two and drops every paragraph in between.
func (d *Document) removeRegion(start, end types.TextPos) {
	first := d.paragraphs[start.Index()]
	if start.Index() == end.Index() {
		_ = first.RemoveRegion(start.Offset(), end.Offset())
		return
	}
	last := d.paragraphs[end.Index()]
	_ = last.RemoveRegion(0, end.Offset())
	_ = first.RemoveRegion(start.Offset(), types.MaxOffset)
	first.Append(last)
	d.paragraphs = slices.Delete(d.paragraphs, start.Index()+1, end.Index()+1)
}

// ExportText streams [start, end) to out. The bounds may come in either
// order and are clamped to the document. Paragraphs are separated by line
// break segments. A paragraph attributes segment opens each paragraph whose
// attributes differ from what a line break would carry over, and the first
// paragraph when the range starts at its beginning and it has attributes.
func (d *Document) ExportText(start, end types.TextPos, out segment.Output) error {
	start, end = d.ClampPos(start), d.ClampPos(end)
	if end.Before(start) {
		start, end = end, start
	}

	carried := style.Empty
	for i := start.Index(); i <= end.Index(); i++ {
		p := d.paragraphs[i]
		if i > start.Index() {
			if err := out.Append(segment.LineBreak()); err != nil {
				return err
			}
		}
		from, to := 0, types.MaxOffset
		if i == start.Index() {
			from = start.Offset()
		}
		// A node paragraph reached by a range from an earlier paragraph is
		// included whole; the document end sits before it.
		if i == end.Index() && !(p.IsNode() && i > start.Index()) {
			to = end.Offset()
		}

		if !p.IsNode() {
			emit := !p.attrs.Equal(carried)
			if i == start.Index() {
				emit = from == 0 && !p.attrs.IsEmpty()
			}
			if emit {
				if err := out.Append(segment.ParagraphAttributes(p.attrs)); err != nil {
					return err
				}
			}
			carried = p.attrs
		} else {
			carried = style.Empty
		}

		if err := p.Export(from, to, out); err != nil {
			return err
		}
	}
	return nil
}
