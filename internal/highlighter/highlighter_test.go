package highlighter

import (
	"context"
	"testing"

	"github.com/bethropolis/richdoc/internal/document"
	"github.com/bethropolis/richdoc/internal/highlighter/lang"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/theme"
	"github.com/bethropolis/richdoc/internal/types"
)

const goSource = "package main\n\nfunc main() {\n\tx := \"hi\" // note\n}"

func hasSpan(spans []Span, capture string, row, from, to int) bool {
	for _, s := range spans {
		if s.Capture == capture && s.Start == types.NewTextPos(row, from) && s.End == types.NewTextPos(row, to) {
			return true
		}
	}
	return false
}

func TestLanguageLookup(t *testing.T) {
	RegisterLanguages()
	for _, tc := range []struct{ file, want string }{
		{"main.go", "Go"},
		{"script.PY", "Python"},
		{"app.mjs", "JavaScript"},
		{"lib.rs", "Rust"},
	} {
		l := lang.GetForFile(tc.file)
		if l == nil || l.Name != tc.want {
			t.Fatalf("GetForFile(%q) = %v, want %s", tc.file, l, tc.want)
		}
	}
	if lang.GetForFile("notes.txt") != nil {
		t.Fatalf("expected no language for .txt")
	}
	if l := lang.GetByName("rust"); l == nil || l.Name != "Rust" {
		t.Fatalf("GetByName(rust) = %v", l)
	}
}

func TestQueriesCompile(t *testing.T) {
	RegisterLanguages()
	for _, l := range lang.GetAll() {
		if _, err := l.Query(); err != nil {
			t.Fatalf("%s query: %v", l.Name, err)
		}
	}
}

func TestSpansGo(t *testing.T) {
	h := New()
	spans, err := h.Spans(context.Background(), goSource, lang.GetByName("go"))
	if err != nil {
		t.Fatalf("Spans: %v", err)
	}
	if !hasSpan(spans, "keyword", 0, 0, 7) {
		t.Fatalf("missing keyword span for 'package': %+v", spans)
	}
	if !hasSpan(spans, "function", 2, 5, 9) {
		t.Fatalf("missing function span for 'main': %+v", spans)
	}
	// Columns are runes: the leading tab is one position.
	if !hasSpan(spans, "string", 3, 6, 10) {
		t.Fatalf("missing string span: %+v", spans)
	}
	if !hasSpan(spans, "comment", 3, 11, 18) {
		t.Fatalf("missing comment span: %+v", spans)
	}
}

func TestSpansMultiLineCapture(t *testing.T) {
	h := New()
	src := "package p\n\nvar s = `ab\ncd`"
	spans, err := h.Spans(context.Background(), src, lang.GetByName("go"))
	if err != nil {
		t.Fatalf("Spans: %v", err)
	}
	if !hasSpan(spans, "string", 2, 8, 11) || !hasSpan(spans, "string", 3, 0, 3) {
		t.Fatalf("raw string not split per paragraph: %+v", spans)
	}
}

func TestSpansNoLanguage(t *testing.T) {
	if _, err := New().Spans(context.Background(), "x", nil); err != ErrNoLanguage {
		t.Fatalf("err = %v, want ErrNoLanguage", err)
	}
}

func TestHighlightDocument(t *testing.T) {
	doc := document.New(document.WithText(goSource))
	heading := style.NewBuilder().SpaceAbove(4).Build()
	if _, err := doc.ApplyStyle(types.Zero, types.NewTextPos(0, 1), heading); err != nil {
		t.Fatalf("ApplyStyle: %v", err)
	}

	th := &theme.Paper
	n, err := New().Highlight(context.Background(), doc, lang.GetForFile("x.go"), th)
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if n == 0 {
		t.Fatalf("no spans applied")
	}
	if doc.Text() != goSource {
		t.Fatalf("text changed: %q", doc.Text())
	}

	keyword, _ := th.Style("Default").Combine(th.Style("keyword")).Split()
	got, _ := doc.StyleAttrs(types.Leading(0, 0)).Split()
	if !got.Equal(keyword) {
		t.Fatalf("style at 'package' = %v, want %v", got, keyword)
	}

	comment, _ := th.Style("Default").Combine(th.Style("comment")).Split()
	got, _ = doc.StyleAttrs(types.Leading(3, 12)).Split()
	if !got.Equal(comment) {
		t.Fatalf("style in comment = %v, want %v", got, comment)
	}

	plain, _ := th.Style("Default").Split()
	got, _ = doc.StyleAttrs(types.Leading(3, 1)).Split()
	if !got.Equal(plain) {
		t.Fatalf("style of identifier = %v, want default %v", got, plain)
	}

	if !doc.ParagraphAttrs(0).Equal(heading) {
		t.Fatalf("paragraph attrs lost: %v", doc.ParagraphAttrs(0))
	}
}
