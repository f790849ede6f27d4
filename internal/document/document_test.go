package document

import (
	"errors"
	"testing"

	"github.com/bethropolis/richdoc/internal/event"
	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/types"
)

func pos(i, o int) types.TextPos { return types.NewTextPos(i, o) }

func checkDocument(t *testing.T, d *Document) {
	t.Helper()
	if d.Size() < 1 {
		t.Fatal("document has no paragraphs")
	}
	for i := 0; i < d.Size(); i++ {
		checkInvariants(t, d.Paragraph(i))
	}
}

type recorder struct {
	text  []event.TextChange
	style []event.StyleChange
}

func (r *recorder) OnTextChanged(c event.TextChange)   { r.text = append(r.text, c) }
func (r *recorder) OnStyleChanged(c event.StyleChange) { r.style = append(r.style, c) }

func TestApplyStyleOnSuffix(t *testing.T) {
	d := New(WithText("Hello world"))
	changed, err := d.ApplyStyle(pos(0, 6), pos(0, 11), bold)
	if err != nil || !changed {
		t.Fatalf("ApplyStyle = %v, %v", changed, err)
	}
	expectRuns(t, d.Paragraph(0), "Hello ", style.Empty, "world", bold)
}

func TestPureInsertion(t *testing.T) {
	d := New(WithText("Hello world"))
	end, err := d.ReplaceText(pos(0, 5), pos(0, 5), " there")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Text(); got != "Hello there world" {
		t.Fatalf("Text = %q", got)
	}
	if !end.SameLocation(pos(0, 11)) {
		t.Fatalf("end = %v, want (0,11)", end)
	}
}

func TestCrossParagraphRemove(t *testing.T) {
	d := New(WithText("abc\ndef"))
	if d.Size() != 2 {
		t.Fatalf("Size = %d", d.Size())
	}
	if _, err := d.RemoveRegion(pos(0, 1), pos(1, 1)); err != nil {
		t.Fatal(err)
	}
	if d.Size() != 1 || d.Text() != "aef" {
		t.Fatalf("got %d paragraphs %q", d.Size(), d.Text())
	}
	checkDocument(t, d)
}

func TestLineBreakKeepsItalic(t *testing.T) {
	d := New()
	in := segment.FromSlice(segment.StyledText("abcdef", italic))
	if _, err := d.Replace(nil, types.Zero, types.Zero, in); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ReplaceText(pos(0, 3), pos(0, 3), "\n"); err != nil {
		t.Fatal(err)
	}
	if d.Size() != 2 {
		t.Fatalf("Size = %d", d.Size())
	}
	expectRuns(t, d.Paragraph(0), "abc", italic)
	expectRuns(t, d.Paragraph(1), "def", italic)
}

func TestMarkerShiftsWithInsertion(t *testing.T) {
	d := New(WithText("Hello world"))
	m := d.GetMarker(pos(0, 5))
	if _, err := d.ReplaceText(types.Zero, types.Zero, "Say: "); err != nil {
		t.Fatal(err)
	}
	if got := m.TextPos(); !got.SameLocation(pos(0, 10)) {
		t.Fatalf("marker at %v, want (0,10)", got)
	}
}

func TestReplaceAcrossLines(t *testing.T) {
	d := New(WithText("abcdef\nghi"))
	rec := &recorder{}
	d.AddListener(rec)

	end, err := d.ReplaceText(pos(0, 2), pos(0, 4), "X\nY")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Text(); got != "abX\nYef\nghi" {
		t.Fatalf("Text = %q", got)
	}
	if !end.SameLocation(pos(1, 1)) {
		t.Fatalf("end = %v", end)
	}
	if len(rec.text) != 1 {
		t.Fatalf("got %d text events", len(rec.text))
	}
	c := rec.text[0]
	if !c.Start.SameLocation(pos(0, 2)) || !c.End.SameLocation(pos(0, 4)) ||
		c.CharsAddedTop != 1 || c.LinesAdded != 1 || c.CharsAddedBottom != 1 {
		t.Fatalf("event = %+v", c)
	}
}

func TestMarkers(t *testing.T) {
	d := New(WithText("abcdef\nghi\njkl"))
	before := d.GetMarker(pos(0, 1))
	atStart := d.GetMarker(pos(0, 2))
	inside := d.GetMarker(pos(0, 4))
	atEnd := d.GetMarker(pos(1, 1))
	sameLine := d.GetMarker(pos(1, 3))
	later := d.GetMarker(pos(2, 2))

	// remove "cdef\ng" and insert "XY"
	if _, err := d.ReplaceText(pos(0, 2), pos(1, 1), "XY"); err != nil {
		t.Fatal(err)
	}
	if got := d.Text(); got != "abXYhi\njkl" {
		t.Fatalf("Text = %q", got)
	}
	tests := []struct {
		name string
		m    *Marker
		want types.TextPos
	}{
		{"before", before, pos(0, 1)},
		{"at start", atStart, pos(0, 2)},
		{"inside", inside, pos(0, 2)},
		{"at end", atEnd, pos(0, 4)},
		{"end line", sameLine, pos(0, 6)},
		{"later line", later, pos(1, 2)},
	}
	for _, tt := range tests {
		if got := tt.m.TextPos(); !got.SameLocation(tt.want) {
			t.Errorf("%s: marker at %v, want %v", tt.name, got, tt.want)
		}
	}

	if !d.ReleaseMarker(later) || d.ReleaseMarker(later) {
		t.Fatal("ReleaseMarker did not report membership")
	}
}

func TestGetMarkerClamps(t *testing.T) {
	d := New(WithText("abc\nde"))
	if got := d.GetMarker(pos(-3, 4)).TextPos(); !got.SameLocation(types.Zero) {
		t.Fatalf("negative index -> %v", got)
	}
	if got := d.GetMarker(pos(7, 0)).TextPos(); !got.SameLocation(pos(1, 2)) {
		t.Fatalf("index past end -> %v", got)
	}
	if got := d.GetMarker(pos(0, 99)).TextPos(); !got.SameLocation(pos(0, 3)) {
		t.Fatalf("offset past end -> %v", got)
	}
}

func TestNotEditableIsNoOp(t *testing.T) {
	d := New(WithText("abc"), WithEditable(false))
	rec := &recorder{}
	d.AddListener(rec)

	end, err := d.ReplaceText(pos(0, 0), pos(0, 1), "x")
	if err != nil || end != types.NoPos {
		t.Fatalf("Replace = %v, %v", end, err)
	}
	changed, err := d.ApplyStyle(pos(0, 0), pos(0, 3), bold)
	if err != nil || changed {
		t.Fatalf("ApplyStyle = %v, %v", changed, err)
	}
	if d.Text() != "abc" || len(rec.text)+len(rec.style) != 0 {
		t.Fatalf("document changed: %q, events %v %v", d.Text(), rec.text, rec.style)
	}
}

func TestInvalidArgumentsLeaveDocumentUntouched(t *testing.T) {
	d := New(WithText("abc\ndef"))
	failing := ResolverFunc(func(string, []string) (*style.Attrs, error) {
		return nil, errors.New("unknown style")
	})
	tests := []struct {
		name       string
		start, end types.TextPos
		in         segment.Input
		resolver   StyleResolver
		want       error
	}{
		{"index past end", pos(0, 0), pos(2, 0), segment.FromSlice(), nil, ErrInvalidPosition},
		{"negative offset", pos(0, -1), pos(0, 1), segment.FromSlice(), nil, ErrInvalidPosition},
		{"inverted", pos(1, 0), pos(0, 1), segment.FromSlice(), nil, ErrInvalidRange},
		{"line break in text", pos(0, 0), pos(0, 3), segment.FromSlice(segment.Text("a\nb", segment.StyleInfo{})), nil, ErrLineBreakInText},
		{"resolver failure", pos(0, 0), pos(1, 3), segment.FromSlice(segment.Text("x", segment.StyleInfo{Names: []string{"nope"}})), failing, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Replace(tt.resolver, tt.start, tt.end, tt.in)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if d.Text() != "abc\ndef" {
				t.Fatalf("document changed: %q", d.Text())
			}
		})
	}
}

func TestReplaceUsesResolver(t *testing.T) {
	resolver := ResolverFunc(func(direct string, names []string) (*style.Attrs, error) {
		if len(names) == 1 && names[0] == "strong" {
			return style.Of(style.Bold, true, style.TextAlignment, style.AlignRight), nil
		}
		return style.Empty, nil
	})
	d := New(WithResolver(resolver))
	in := segment.FromSlice(segment.Text("hi", segment.StyleInfo{Names: []string{"strong"}}))
	if _, err := d.Replace(nil, types.Zero, types.Zero, in); err != nil {
		t.Fatal(err)
	}
	// paragraph attributes from a text segment's style are dropped
	expectRuns(t, d.Paragraph(0), "hi", bold)
	if !d.ParagraphAttrs(0).IsEmpty() {
		t.Fatalf("paragraph attributes = %v", d.ParagraphAttrs(0))
	}
}

func TestUnstyledTextInheritsPrecedingStyle(t *testing.T) {
	d := New()
	in := segment.FromSlice(segment.StyledText("ab", bold), segment.StyledText("cd", italic))
	if _, err := d.Replace(nil, types.Zero, types.Zero, in); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ReplaceText(pos(0, 2), pos(0, 2), "X"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ReplaceText(pos(0, 0), pos(0, 0), "Y"); err != nil {
		t.Fatal(err)
	}
	expectRuns(t, d.Paragraph(0), "YabX", bold, "cd", italic)
}

func TestRoundTrip(t *testing.T) {
	gen := func() any { return "chart" }
	src := New()
	in := segment.FromSlice(
		segment.ParagraphAttributes(style.Of(style.TextAlignment, style.AlignCenter)),
		segment.StyledText("Title", bold),
		segment.LineBreak(),
		segment.ParagraphAttributes(style.Empty),
		segment.StyledText("body ", style.Empty),
		segment.InlineNode(gen),
		segment.StyledText(" text", italic),
		segment.LineBreak(),
		segment.Paragraph(gen),
		segment.LineBreak(),
		segment.StyledText("tail", style.Empty),
	)
	if _, err := src.Replace(nil, types.Zero, types.Zero, in); err != nil {
		t.Fatal(err)
	}
	if src.Size() != 4 || !src.Paragraph(2).IsNode() {
		t.Fatalf("unexpected structure: %d paragraphs, %q", src.Size(), src.Text())
	}

	var out segment.Collector
	if err := src.ExportText(src.DocumentEnd(), types.Zero, &out); err != nil {
		t.Fatal(err)
	}
	dst := New()
	if _, err := dst.Replace(nil, types.Zero, types.Zero, out.Input()); err != nil {
		t.Fatal(err)
	}

	if dst.Text() != src.Text() {
		t.Fatalf("round trip text %q, want %q", dst.Text(), src.Text())
	}
	if dst.Size() != src.Size() {
		t.Fatalf("round trip size %d, want %d", dst.Size(), src.Size())
	}
	for i := 0; i < src.Size(); i++ {
		if !dst.ParagraphAttrs(i).Equal(src.ParagraphAttrs(i)) {
			t.Fatalf("paragraph %d attrs %v, want %v", i, dst.ParagraphAttrs(i), src.ParagraphAttrs(i))
		}
		if src.Paragraph(i).IsNode() != dst.Paragraph(i).IsNode() {
			t.Fatalf("paragraph %d node mismatch", i)
		}
		if !src.Paragraph(i).IsNode() {
			expectSameRuns(t, dst.Paragraph(i), src.Paragraph(i))
		}
	}
	checkDocument(t, dst)
}

func expectSameRuns(t *testing.T, got, want *Paragraph) {
	t.Helper()
	g, w := got.Runs(), want.Runs()
	if len(g) != len(w) {
		t.Fatalf("runs %v, want %v", g, w)
	}
	for i := range g {
		if g[i].Text != w[i].Text || !g[i].Attrs.Equal(w[i].Attrs) || (g[i].Node == nil) != (w[i].Node == nil) {
			t.Fatalf("run %d = %+v, want %+v", i, g[i], w[i])
		}
	}
}

func TestExportEmitsParagraphAttributesOnlyOnChange(t *testing.T) {
	d := New(WithText("a\nb\nc"))
	center := style.Of(style.TextAlignment, style.AlignCenter)
	if _, err := d.ApplyStyle(pos(1, 0), pos(2, 0), center); err != nil {
		t.Fatal(err)
	}
	var out segment.Collector
	if err := d.ExportText(types.Zero, d.DocumentEnd(), &out); err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, s := range out.Segments {
		if s.IsParagraphAttributes() {
			n++
		}
	}
	// one on "b", which differs from "a"; "c" carries the same attributes
	if n != 1 {
		t.Fatalf("got %d paragraph attribute segments: %v", n, out.Segments)
	}
	if out.PlainText() != "a\nb\nc" {
		t.Fatalf("PlainText = %q", out.PlainText())
	}
}

func TestApplyStyleAcrossParagraphs(t *testing.T) {
	d := New(WithText("abc\ndef\nghi"))
	rec := &recorder{}
	d.AddListener(rec)

	changed, err := d.ApplyStyle(pos(2, 1), pos(0, 2), bold)
	if err != nil || !changed {
		t.Fatalf("ApplyStyle = %v, %v", changed, err)
	}
	expectRuns(t, d.Paragraph(0), "ab", style.Empty, "c", bold)
	expectRuns(t, d.Paragraph(1), "def", bold)
	expectRuns(t, d.Paragraph(2), "g", bold, "hi", style.Empty)
	if len(rec.style) != 1 || len(rec.text) != 0 {
		t.Fatalf("events: %v %v", rec.style, rec.text)
	}

	changed, err = d.ApplyStyle(pos(1, 0), pos(1, 3), bold)
	if err != nil || changed {
		t.Fatalf("second ApplyStyle = %v, %v", changed, err)
	}
	if len(rec.style) != 1 {
		t.Fatal("style event fired without a change")
	}
}

func TestSetStyleReplaces(t *testing.T) {
	d := New()
	in := segment.FromSlice(segment.StyledText("abc", bold.Combine(italic)))
	if _, err := d.Replace(nil, types.Zero, types.Zero, in); err != nil {
		t.Fatal(err)
	}
	if _, err := d.SetStyle(pos(0, 1), pos(0, 2), italic); err != nil {
		t.Fatal(err)
	}
	bi := bold.Combine(italic)
	expectRuns(t, d.Paragraph(0), "a", bi, "b", italic, "c", bi)
}

func TestStyleAttrsHonoursBias(t *testing.T) {
	d := New()
	in := segment.FromSlice(segment.StyledText("ab", bold), segment.StyledText("cd", italic))
	if _, err := d.Replace(nil, types.Zero, types.Zero, in); err != nil {
		t.Fatal(err)
	}
	if got := d.StyleAttrs(types.Leading(0, 2)); !got.Equal(italic) {
		t.Fatalf("leading = %v", got)
	}
	if got := d.StyleAttrs(types.Trailing(0, 1)); !got.Equal(bold) {
		t.Fatalf("trailing = %v", got)
	}
	if got := d.StyleAttrs(d.DocumentEnd()); !got.Equal(italic) {
		t.Fatalf("at end = %v", got)
	}
}

func TestRemoveEverything(t *testing.T) {
	d := New(WithText("one\ntwo\nthree"))
	if _, err := d.RemoveRegion(types.Zero, d.DocumentEnd()); err != nil {
		t.Fatal(err)
	}
	if d.Size() != 1 || d.ParagraphLength(0) != 0 || d.Paragraph(0).RunCount() != 0 {
		t.Fatalf("got %d paragraphs, %q", d.Size(), d.Text())
	}
}

func TestRemoveRegionKeepsTrailingNodeParagraph(t *testing.T) {
	d := New(WithText("abc"))
	in := segment.FromSlice(segment.LineBreak(), segment.Paragraph(nil))
	if _, err := d.Replace(nil, d.DocumentEnd(), d.DocumentEnd(), in); err != nil {
		t.Fatal(err)
	}
	if d.Size() != 2 || !d.Paragraph(1).IsNode() {
		t.Fatalf("setup: %d paragraphs", d.Size())
	}
	if _, err := d.RemoveRegion(pos(0, 1), pos(1, 0)); err != nil {
		t.Fatal(err)
	}
	if d.Size() != 2 || d.PlainText(0) != "a" || !d.Paragraph(1).IsNode() {
		t.Fatalf("got %d paragraphs, %q", d.Size(), d.Text())
	}
}

func TestRemoveListener(t *testing.T) {
	d := New()
	rec := &recorder{}
	d.AddListener(rec)
	if !d.RemoveListener(rec) {
		t.Fatal("listener not found")
	}
	if _, err := d.ReplaceText(types.Zero, types.Zero, "x"); err != nil {
		t.Fatal(err)
	}
	if len(rec.text) != 0 {
		t.Fatal("removed listener was called")
	}
}

func TestSetEditableDispatches(t *testing.T) {
	d := New()
	var got []bool
	d.Events().Subscribe(event.TypeEditableChanged, func(e event.Event) {
		got = append(got, e.Data.(event.EditableChange).Editable)
	})
	d.SetEditable(false)
	d.SetEditable(false)
	d.SetEditable(true)
	if len(got) != 2 || got[0] || !got[1] {
		t.Fatalf("events = %v", got)
	}
}

func TestStyleCacheDedups(t *testing.T) {
	d := New()
	for i := 0; i < 3; i++ {
		in := segment.FromSlice(segment.StyledText("x", style.Of(style.Bold, true)), segment.StyledText("y", style.Empty))
		if _, err := d.Replace(nil, d.DocumentEnd(), d.DocumentEnd(), in); err != nil {
			t.Fatal(err)
		}
	}
	if n := d.StyleCache().Len(); n != 1 {
		t.Fatalf("cache holds %d sets", n)
	}
	runs := d.Paragraph(0).Runs()
	if runs[0].Attrs != runs[2].Attrs {
		t.Fatal("equal styles do not share an instance")
	}
}

func nodeDocument(t *testing.T) *Document {
	t.Helper()
	d := New(WithText("abc"))
	in := segment.FromSlice(segment.LineBreak(), segment.Paragraph(nil), segment.LineBreak(), segment.StyledText("def", style.Empty))
	if _, err := d.Replace(nil, d.DocumentEnd(), d.DocumentEnd(), in); err != nil {
		t.Fatal(err)
	}
	if d.Size() != 3 || !d.Paragraph(1).IsNode() {
		t.Fatalf("setup: %d paragraphs %q", d.Size(), d.Text())
	}
	return d
}

func countKind(segs []segment.Segment, k segment.Kind) int {
	n := 0
	for _, s := range segs {
		if s.Kind() == k {
			n++
		}
	}
	return n
}

func TestExportEmptyRangeOnNodeParagraph(t *testing.T) {
	d := nodeDocument(t)
	var c segment.Collector
	if err := d.ExportText(pos(1, 0), pos(1, 0), &c); err != nil {
		t.Fatal(err)
	}
	if len(c.Segments) != 0 {
		t.Fatalf("empty range exported %v", c.Segments)
	}
}

func TestExportRangeThroughNodeParagraph(t *testing.T) {
	d := nodeDocument(t)
	var c segment.Collector
	if err := d.ExportText(pos(0, 1), pos(2, 1), &c); err != nil {
		t.Fatal(err)
	}
	if n := countKind(c.Segments, segment.KindParagraph); n != 1 {
		t.Fatalf("node exported %d times: %v", n, c.Segments)
	}

	c = segment.Collector{}
	if err := d.ExportText(pos(0, 1), pos(1, 0), &c); err != nil {
		t.Fatal(err)
	}
	if n := countKind(c.Segments, segment.KindParagraph); n != 1 {
		t.Fatalf("range ending on the node dropped it: %v", c.Segments)
	}
}
