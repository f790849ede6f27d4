package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/richdoc/internal/document"
	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/types"
)

type fakeHandler struct {
	plainTextHandler
	id       string
	priority int
}

func (f fakeHandler) Format() string { return f.id }
func (f fakeHandler) Priority() int  { return f.priority }

func TestFormatsOrdering(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeHandler{id: "b", priority: 10})
	r.Register(fakeHandler{id: "a", priority: 10})
	r.Register(fakeHandler{id: "c", priority: 5})
	r.Register(fakeHandler{id: "z", priority: 20})

	var got []string
	for _, h := range r.Formats() {
		got = append(got, h.Format())
	}
	if strings.Join(got, ",") != "z,b,a,c" {
		t.Fatalf("order = %v", got)
	}
	if r.Default().Format() != "z" {
		t.Fatalf("Default = %s", r.Default().Format())
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	if r.Default().Format() != Native {
		t.Fatalf("Default = %s", r.Default().Format())
	}
	if n := len(r.ImportFormats()); n != 2 {
		t.Fatalf("%d import formats", n)
	}
	if n := len(r.ExportFormats()); n != 3 {
		t.Fatalf("%d export formats", n)
	}
	h, err := r.Resolve("html")
	if err != nil || h.Format() != HTML {
		t.Fatalf("Resolve(html) = %v, %v", h, err)
	}
	if _, err := r.Resolve(".docx"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Resolve(.docx) = %v", err)
	}
}

func styledDocument(t *testing.T) *document.Document {
	t.Helper()
	d := document.New()
	red := style.Of(style.TextColor, tcell.ColorRed, style.Bold, true)
	in := segment.FromSlice(
		segment.ParagraphAttributes(style.Of(style.TextAlignment, style.AlignCenter)),
		segment.StyledText("Title <1>", red),
		segment.LineBreak(),
		segment.ParagraphAttributes(style.Empty),
		segment.StyledText("plain & ", style.Empty),
		segment.StyledText("sized", style.Of(style.FontSize, 14.0)),
	)
	if _, err := d.Replace(nil, types.Zero, types.Zero, in); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestPlainTextRoundTrip(t *testing.T) {
	src := document.New(document.WithText("one\ntwo\n\nfour"))
	h := NewPlainTextHandler()
	var buf bytes.Buffer
	if err := h.Export(src, types.Zero, src.DocumentEnd(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "one\ntwo\n\nfour" {
		t.Fatalf("export = %q", buf.String())
	}
	in, err := h.Import(strings.NewReader("a\r\nb"))
	if err != nil {
		t.Fatal(err)
	}
	dst := document.New()
	if _, err := dst.Replace(nil, types.Zero, types.Zero, in); err != nil {
		t.Fatal(err)
	}
	if dst.Text() != "a\nb" {
		t.Fatalf("import = %q", dst.Text())
	}
}

func TestNativeRoundTrip(t *testing.T) {
	src := styledDocument(t)
	h := NewNativeHandler()
	var buf bytes.Buffer
	if err := h.Export(src, types.Zero, src.DocumentEnd(), &buf); err != nil {
		t.Fatal(err)
	}
	in, err := h.Import(&buf)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, buf.String())
	}
	dst := document.New()
	if _, err := dst.Replace(nil, types.Zero, types.Zero, in); err != nil {
		t.Fatal(err)
	}
	if dst.Text() != src.Text() {
		t.Fatalf("text = %q, want %q", dst.Text(), src.Text())
	}
	for i := 0; i < src.Size(); i++ {
		if !dst.ParagraphAttrs(i).Equal(src.ParagraphAttrs(i)) {
			t.Fatalf("paragraph %d attrs = %v, want %v", i, dst.ParagraphAttrs(i), src.ParagraphAttrs(i))
		}
		got, want := dst.Paragraph(i).Runs(), src.Paragraph(i).Runs()
		if len(got) != len(want) {
			t.Fatalf("paragraph %d runs = %v, want %v", i, got, want)
		}
		for j := range got {
			if got[j].Text != want[j].Text || !got[j].Attrs.Equal(want[j].Attrs) {
				t.Fatalf("paragraph %d run %d = %+v, want %+v", i, j, got[j], want[j])
			}
		}
	}
}

func TestNativeRejectsUnknownKind(t *testing.T) {
	_, err := NewNativeHandler().Import(strings.NewReader("version = 1\n[[segment]]\nkind = \"sound\"\n"))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestHTMLExport(t *testing.T) {
	src := styledDocument(t)
	var buf bytes.Buffer
	if err := NewHTMLHandler().Export(src, types.Zero, src.DocumentEnd(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`<p style="text-align: center"><span style="font-weight: bold; color: #ff0000">Title &lt;1&gt;</span></p>`,
		`<p>plain &amp; <span style="font-size: 14pt">sized</span></p>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in\n%s", want, out)
		}
	}
	if _, err := NewHTMLHandler().Import(strings.NewReader(out)); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Import = %v", err)
	}
}
