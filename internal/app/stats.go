package app

import (
	"fmt"
	"io"

	"github.com/bethropolis/richdoc/internal/document"
	"github.com/bethropolis/richdoc/internal/types"
)

// Stats summarises a document.
type Stats struct {
	Paragraphs     int
	NodeParagraphs int
	Characters     int
	Words          int
	Runs           int
	Styles         int
}

// Stats counts the current document.
func (a *App) Stats() Stats {
	var s Stats
	_ = a.Edit(func(doc *document.Document) error {
		s = collectStats(doc)
		return nil
	})
	return s
}

func collectStats(doc *document.Document) Stats {
	s := Stats{Paragraphs: doc.Size(), Styles: doc.StyleCache().Len()}
	for i := 0; i < doc.Size(); i++ {
		p := doc.Paragraph(i)
		if p.IsNode() {
			s.NodeParagraphs++
			continue
		}
		s.Characters += p.Len()
		s.Runs += p.RunCount()
	}

	pos := types.Zero
	for {
		if start, end := doc.WordAt(pos); start != end && start.SameLocation(pos) {
			s.Words++
		}
		next := doc.NextWordStart(pos)
		if !next.After(pos) {
			break
		}
		pos = next
	}
	return s
}

// Print writes s as aligned key/value lines.
func (s Stats) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"paragraphs: %d\nnodes:      %d\ncharacters: %d\nwords:      %d\nruns:       %d\nstyles:     %d\n",
		s.Paragraphs, s.NodeParagraphs, s.Characters, s.Words, s.Runs, s.Styles)
	return err
}
