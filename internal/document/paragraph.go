package document

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/types"
)

// Paragraph is one line of a document: a list of styled runs, or a single
// embedded object (a node paragraph) with no runs at all.
//
// Adjacent runs never share a style. Every mutation builds its new run list
// before swapping it in, so a failure leaves the paragraph untouched.
type Paragraph struct {
	runs  []run
	attrs *style.Attrs
	node  segment.Generator
	cache *style.Cache
}

// NewParagraph returns an empty text paragraph interning styles in cache.
func NewParagraph(cache *style.Cache) *Paragraph {
	return &Paragraph{attrs: style.Empty, cache: cache}
}

// NewNodeParagraph returns a paragraph occupied by an embedded object.
func NewNodeParagraph(cache *style.Cache, gen segment.Generator) *Paragraph {
	if gen == nil {
		gen = func() any { return nil }
	}
	return &Paragraph{attrs: style.Empty, node: gen, cache: cache}
}

// IsNode reports whether the paragraph holds an embedded object.
func (p *Paragraph) IsNode() bool { return p.node != nil }

// Generator returns the embedded object's factory, or nil.
func (p *Paragraph) Generator() segment.Generator { return p.node }

// Attrs returns the paragraph attributes.
func (p *Paragraph) Attrs() *style.Attrs { return p.attrs }

func (p *Paragraph) setAttrs(a *style.Attrs) bool {
	a = p.cache.Intern(a)
	if a.Equal(p.attrs) {
		return false
	}
	p.attrs = a
	return true
}

// PlainText returns the paragraph's text. Inline objects appear as
// ObjectReplacement; a node paragraph has no text.
func (p *Paragraph) PlainText() string {
	if len(p.runs) == 1 {
		return p.runs[0].text
	}
	var sb strings.Builder
	for _, r := range p.runs {
		sb.WriteString(r.text)
	}
	return sb.String()
}

// Len returns the paragraph length in characters.
func (p *Paragraph) Len() int {
	n := 0
	for _, r := range p.runs {
		n += r.n
	}
	return n
}

// RunCount returns the number of runs.
func (p *Paragraph) RunCount() int { return len(p.runs) }

// Runs returns a copy of the run list.
func (p *Paragraph) Runs() []Run {
	out := make([]Run, len(p.runs))
	for i, r := range p.runs {
		out[i] = Run{Text: r.text, Attrs: r.attrs, Node: r.node}
	}
	return out
}

// locate returns the run holding offset and the offset inside it. An offset
// at the paragraph end yields (RunCount(), 0).
func (p *Paragraph) locate(offset int) (int, int) {
	pos := 0
	for i, r := range p.runs {
		if offset < pos+r.n {
			return i, offset - pos
		}
		pos += r.n
	}
	return len(p.runs), 0
}

func (p *Paragraph) checkOffset(offset int) error {
	if p.IsNode() {
		return ErrNodeParagraph
	}
	if n := p.Len(); offset < 0 || offset > n {
		return fmt.Errorf("%w: offset %d in paragraph of length %d", ErrInvalidPosition, offset, n)
	}
	return nil
}

// InsertText inserts text styled with attrs at offset. The text joins the
// preceding run when the styles match, otherwise the following one, and
// only otherwise becomes a run of its own.
func (p *Paragraph) InsertText(offset int, text string, attrs *style.Attrs) error {
	if strings.ContainsRune(text, '\n') {
		return ErrLineBreakInText
	}
	if err := p.checkOffset(offset); err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	nr := run{text: text, n: utf8.RuneCountInString(text), attrs: p.cache.Intern(attrs)}
	i, inner := p.locate(offset)
	if inner == 0 {
		switch {
		case i > 0 && p.runs[i-1].mergeable(nr):
			p.runs[i-1] = p.runs[i-1].join(nr)
		case i < len(p.runs) && nr.mergeable(p.runs[i]):
			p.runs[i] = nr.join(p.runs[i])
		default:
			p.runs = slices.Insert(p.runs, i, nr)
		}
		return nil
	}

	r := p.runs[i]
	if r.mergeable(nr) {
		p.runs[i] = r.slice(0, inner).join(nr).join(r.slice(inner, r.n))
		return nil
	}
	p.runs = slices.Insert(p.runs, i+1, nr, r.slice(inner, r.n))
	p.runs[i] = r.slice(0, inner)
	return nil
}

// InsertInlineNode inserts an embedded object occupying one character.
func (p *Paragraph) InsertInlineNode(offset int, gen segment.Generator, attrs *style.Attrs) error {
	if err := p.checkOffset(offset); err != nil {
		return err
	}
	if gen == nil {
		gen = func() any { return nil }
	}
	nr := run{text: string(ObjectReplacement), n: 1, attrs: p.cache.Intern(attrs), node: gen}
	i, inner := p.locate(offset)
	if inner == 0 {
		p.runs = slices.Insert(p.runs, i, nr)
		return nil
	}
	r := p.runs[i]
	p.runs = slices.Insert(p.runs, i+1, nr, r.slice(inner, r.n))
	p.runs[i] = r.slice(0, inner)
	return nil
}

// InsertLineBreak splits the paragraph at offset. The receiver keeps the
// head; the returned paragraph holds the tail and the same paragraph
// attributes. A paragraph with no runs yields another paragraph with no
// runs: character style does not survive a blank line.
func (p *Paragraph) InsertLineBreak(offset int) (*Paragraph, error) {
	if err := p.checkOffset(offset); err != nil {
		return nil, err
	}
	i, inner := p.locate(offset)

	head := make([]run, 0, i+1)
	head = append(head, p.runs[:i]...)
	var tail []run
	if inner > 0 {
		r := p.runs[i]
		head = append(head, r.slice(0, inner))
		tail = append(tail, r.slice(inner, r.n))
		tail = append(tail, p.runs[i+1:]...)
	} else {
		tail = append(tail, p.runs[i:]...)
	}

	p.runs = head
	return &Paragraph{runs: tail, attrs: p.attrs, cache: p.cache}, nil
}

// RemoveRegion deletes characters [start, end). end is clamped to the
// paragraph length; an empty or inverted range removes nothing.
func (p *Paragraph) RemoveRegion(start, end int) error {
	if start < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidPosition, start)
	}
	if p.IsNode() {
		return nil
	}
	end = min(end, p.Len())
	if start >= end {
		return nil
	}

	out := make([]run, 0, len(p.runs))
	pos := 0
	for _, r := range p.runs {
		rs, re := pos, pos+r.n
		pos = re
		if re <= start || rs >= end {
			out = append(out, r)
			continue
		}
		if rs < start {
			out = append(out, r.slice(0, start-rs))
		}
		if re > end {
			out = append(out, r.slice(end-rs, r.n))
		}
	}
	p.runs = mergeRuns(out)
	return nil
}

// Append moves other's runs onto the end of p, joining the runs at the seam
// when their styles match. Appending onto a node paragraph replaces the
// object; appending a node paragraph adds nothing.
func (p *Paragraph) Append(other *Paragraph) {
	if other == nil || other.IsNode() {
		return
	}
	if p.IsNode() {
		p.node = nil
		p.runs = nil
	}
	out := make([]run, 0, len(p.runs)+len(other.runs))
	out = append(out, p.runs...)
	out = append(out, other.runs...)
	p.runs = mergeRuns(out)
}

// ApplyStyle restyles characters [start, end). With merge set, attrs are
// combined into each run's style; otherwise they replace it. Boundary runs
// are split as needed and equal neighbours joined afterwards. It reports
// whether any run's style changed.
func (p *Paragraph) ApplyStyle(start, end int, attrs *style.Attrs, merge bool) bool {
	if p.IsNode() {
		return false
	}
	start = max(start, 0)
	end = min(end, p.Len())
	if start >= end {
		return false
	}

	changed := false
	restyle := func(r run) run {
		a := attrs
		if merge {
			a = r.attrs.Combine(attrs)
		}
		a = p.cache.Intern(a)
		if !a.Equal(r.attrs) {
			changed = true
		}
		r.attrs = a
		return r
	}

	out := make([]run, 0, len(p.runs)+2)
	pos := 0
	for _, r := range p.runs {
		rs, re := pos, pos+r.n
		pos = re
		switch classify(rs, re, start, end) {
		case runBefore, runAfter:
			out = append(out, r)
		case rangeIsRun, runInsideRange, runAtRangeEdge:
			out = append(out, restyle(r))
		case rangeAtRunStart, endCutsRun:
			out = append(out, restyle(r.slice(0, end-rs)), r.slice(end-rs, r.n))
		case rangeAtRunEnd, startCutsRun:
			out = append(out, r.slice(0, start-rs), restyle(r.slice(start-rs, r.n)))
		case rangeInsideRun:
			out = append(out,
				r.slice(0, start-rs),
				restyle(r.slice(start-rs, end-rs)),
				r.slice(end-rs, r.n))
		}
	}
	if !changed {
		return false
	}
	p.runs = mergeRuns(out)
	return true
}

// Export streams the runs overlapping [start, end) to out. A node paragraph
// counts as one position and exports its object as a paragraph segment when
// the range covers it.
func (p *Paragraph) Export(start, end int, out segment.Output) error {
	if p.IsNode() {
		if max(start, 0) >= min(end, 1) {
			return nil
		}
		return out.Append(segment.Paragraph(p.node))
	}
	start = max(start, 0)
	end = min(end, p.Len())
	pos := 0
	for _, r := range p.runs {
		rs, re := pos, pos+r.n
		pos = re
		s, e := max(start, rs), min(end, re)
		if s >= e {
			continue
		}
		var seg segment.Segment
		if r.isNode() {
			seg = segment.InlineNode(r.node)
		} else {
			seg = segment.StyledText(r.slice(s-rs, e-rs).text, r.attrs)
		}
		if err := out.Append(seg); err != nil {
			return err
		}
	}
	return nil
}

// StyleInfo returns the style of the run holding offset. At the paragraph
// end it returns the last run's style; with no runs, the empty set.
func (p *Paragraph) StyleInfo(offset int) *style.Attrs {
	if len(p.runs) == 0 {
		return style.Empty
	}
	pos := 0
	for _, r := range p.runs {
		if offset < pos+r.n {
			return r.attrs
		}
		pos += r.n
	}
	return p.runs[len(p.runs)-1].attrs
}

// end returns the position at the end of the paragraph at index.
func (p *Paragraph) end(index int) types.TextPos {
	return types.NewTextPos(index, p.Len())
}
