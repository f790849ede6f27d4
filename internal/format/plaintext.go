package format

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bethropolis/richdoc/internal/document"
	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/types"
)

type plainTextHandler struct{}

// NewPlainTextHandler handles unstyled text. Imported text carries no style,
// so it takes the style at the insertion point.
func NewPlainTextHandler() Handler { return plainTextHandler{} }

func (plainTextHandler) Format() string       { return PlainText }
func (plainTextHandler) Priority() int        { return 0 }
func (plainTextHandler) Extensions() []string { return []string{".txt", ".text"} }
func (plainTextHandler) CanImport() bool      { return true }
func (plainTextHandler) CanExport() bool      { return true }

func (plainTextHandler) Import(r io.Reader) (segment.Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading plain text: %w", err)
	}
	return segment.FromText(string(data), segment.StyleInfo{}), nil
}

func (plainTextHandler) Export(src Source, start, end types.TextPos, w io.Writer) error {
	bw := bufio.NewWriter(w)
	err := src.ExportText(start, end, segment.OutputFunc(func(s segment.Segment) error {
		var err error
		switch s.Kind() {
		case segment.KindText:
			_, err = bw.WriteString(s.Text())
		case segment.KindLineBreak:
			err = bw.WriteByte('\n')
		case segment.KindInlineNode:
			_, err = bw.WriteRune(document.ObjectReplacement)
		case segment.KindParagraph, segment.KindParagraphAttributes:
		}
		return err
	}))
	if err != nil {
		return err
	}
	return bw.Flush()
}
