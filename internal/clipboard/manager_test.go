package clipboard

import (
	"testing"

	"github.com/bethropolis/richdoc/internal/document"
	"github.com/bethropolis/richdoc/internal/format"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/types"
)

func pos(i, o int) types.TextPos { return types.NewTextPos(i, o) }

func TestCopyPastePreservesStyle(t *testing.T) {
	backend := &Memory{}
	m := NewManager(backend, format.NewDefaultRegistry())

	src := document.New(document.WithText("hello world"))
	bold := style.Of(style.Bold, true)
	if _, err := src.ApplyStyle(pos(0, 6), pos(0, 11), bold); err != nil {
		t.Fatal(err)
	}
	if err := m.Copy(src, pos(0, 4), pos(0, 8)); err != nil {
		t.Fatal(err)
	}
	if text, _ := backend.ReadAll(); text != "o wo" {
		t.Fatalf("clipboard = %q", text)
	}

	dst := document.New(document.WithText("[]"))
	end, err := m.Paste(dst, pos(0, 1), pos(0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if dst.Text() != "[o wo]" || !end.SameLocation(pos(0, 5)) {
		t.Fatalf("text %q end %v", dst.Text(), end)
	}
	runs := dst.Paragraph(0).Runs()
	if len(runs) != 3 || runs[0].Text != "[o " || runs[1].Text != "wo" || runs[2].Text != "]" {
		t.Fatalf("runs = %v", runs)
	}
	if !runs[1].Attrs.Equal(bold) || !runs[0].Attrs.IsEmpty() {
		t.Fatalf("styles not restored: %v", runs)
	}
}

func TestPasteForeignTextIsPlain(t *testing.T) {
	backend := &Memory{}
	m := NewManager(backend, format.NewDefaultRegistry())

	src := document.New(document.WithText("styled"))
	if _, err := src.ApplyStyle(types.Zero, src.DocumentEnd(), style.Of(style.Italic, true)); err != nil {
		t.Fatal(err)
	}
	if err := m.Copy(src, types.Zero, src.DocumentEnd()); err != nil {
		t.Fatal(err)
	}
	// another program replaced the clipboard
	_ = backend.WriteAll("line one\nline two")

	dst := document.New()
	if _, err := m.Paste(dst, types.Zero, types.Zero); err != nil {
		t.Fatal(err)
	}
	if dst.Text() != "line one\nline two" {
		t.Fatalf("text = %q", dst.Text())
	}
	if !dst.StyleAttrs(pos(0, 1)).IsEmpty() {
		t.Fatalf("foreign text picked up a style: %v", dst.StyleAttrs(pos(0, 1)))
	}
}

func TestCut(t *testing.T) {
	m := NewManager(&Memory{}, format.NewDefaultRegistry())
	d := document.New(document.WithText("abc\ndef"))
	if _, err := m.Cut(d, pos(1, 1), pos(0, 2)); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "abef" {
		t.Fatalf("text = %q", d.Text())
	}
	if _, err := m.Paste(d, pos(0, 2), pos(0, 2)); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "abc\ndef" {
		t.Fatalf("after paste = %q", d.Text())
	}
}

func TestNewBackendMemory(t *testing.T) {
	if _, ok := NewBackend(false).(*Memory); !ok {
		t.Fatal("expected a memory backend")
	}
}
