package format

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/types"
)

type htmlHandler struct {
	title string
}

// NewHTMLHandler exports to a standalone HTML page. It cannot import.
func NewHTMLHandler() Handler { return htmlHandler{title: "Document"} }

func (htmlHandler) Format() string       { return HTML }
func (htmlHandler) Priority() int        { return 100 }
func (htmlHandler) Extensions() []string { return []string{".html", ".htm"} }
func (htmlHandler) CanImport() bool      { return false }
func (htmlHandler) CanExport() bool      { return true }

func (htmlHandler) Import(io.Reader) (segment.Input, error) {
	return nil, fmt.Errorf("%w: import from %s", ErrUnsupported, HTML)
}

func (h htmlHandler) Export(src Source, start, end types.TextPos, w io.Writer) error {
	hw := &htmlWriter{w: bufio.NewWriter(w), attrs: style.Empty}
	hw.printf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString(h.title))
	if err := src.ExportText(start, end, hw); err != nil {
		return err
	}
	hw.flushParagraph()
	hw.printf("</body>\n</html>\n")
	if hw.err != nil {
		return hw.err
	}
	return hw.w.Flush()
}

// htmlWriter turns the segment stream into one element per paragraph.
// Paragraph attributes carry over line breaks until the next paragraph
// attributes segment, as they do when the stream is replayed into a
// document.
type htmlWriter struct {
	w     *bufio.Writer
	err   error
	attrs *style.Attrs
	body  strings.Builder
	node  bool
}

func (hw *htmlWriter) printf(format string, args ...any) {
	if hw.err == nil {
		_, hw.err = fmt.Fprintf(hw.w, format, args...)
	}
}

func (hw *htmlWriter) Append(s segment.Segment) error {
	switch s.Kind() {
	case segment.KindText:
		text := html.EscapeString(s.Text())
		if css := s.Style().Attrs.CSS(); css != "" {
			fmt.Fprintf(&hw.body, "<span style=\"%s\">%s</span>", html.EscapeString(css), text)
		} else {
			hw.body.WriteString(text)
		}
	case segment.KindLineBreak:
		hw.flushParagraph()
	case segment.KindInlineNode:
		hw.body.WriteString(`<span class="embedded"></span>`)
	case segment.KindParagraph:
		hw.node = true
	case segment.KindParagraphAttributes:
		hw.attrs = s.Attrs()
	}
	return hw.err
}

func (hw *htmlWriter) flushParagraph() {
	switch {
	case hw.node:
		hw.printf("<div class=\"embedded\"></div>\n")
		hw.node = false
		// a line break after an object starts a paragraph without attributes
		hw.attrs = style.Empty
	case hw.body.Len() == 0:
		hw.printf("<p%s><br></p>\n", styleAttr(hw.attrs))
	default:
		hw.printf("<p%s>%s</p>\n", styleAttr(hw.attrs), hw.body.String())
	}
	hw.body.Reset()
}

func styleAttr(a *style.Attrs) string {
	css := a.CSS()
	if css == "" {
		return ""
	}
	return ` style="` + html.EscapeString(css) + `"`
}
