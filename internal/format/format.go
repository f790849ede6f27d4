// Package format holds the data-format handlers that move document content
// to and from bytes, and the registry that picks between them.
package format

import (
	"errors"
	"io"

	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/types"
)

var (
	// ErrUnsupported is returned for a direction a handler does not do.
	ErrUnsupported = errors.New("operation not supported by format")
	// ErrUnknownFormat is returned by lookups that find no handler.
	ErrUnknownFormat = errors.New("unknown format")
)

// Source is the part of a document a handler exports from.
type Source interface {
	ExportText(start, end types.TextPos, out segment.Output) error
}

// Handler converts between a byte representation and document segments.
type Handler interface {
	// Format is the identifier, usually a MIME type.
	Format() string
	// Priority orders handlers; the highest is the preferred format.
	Priority() int
	// Extensions lists file extensions, with the dot, this format uses.
	Extensions() []string
	CanImport() bool
	CanExport() bool
	// Import reads r and returns the segments to stream into a document.
	Import(r io.Reader) (segment.Input, error)
	// Export writes [start, end) of src to w.
	Export(src Source, start, end types.TextPos, w io.Writer) error
}

// Format identifiers of the built-in handlers.
const (
	PlainText = "text/plain"
	HTML      = "text/html"
	Native    = "application/x-richdoc+toml"
)
