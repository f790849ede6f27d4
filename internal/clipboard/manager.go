// Package clipboard copies document ranges to a clipboard and pastes them
// back. The backend only holds plain text; the last copy is also kept in
// the richest exportable format so a paste of unchanged clipboard text
// restores its styles.
package clipboard

import (
	"bytes"
	"fmt"

	"github.com/bethropolis/richdoc/internal/document"
	"github.com/bethropolis/richdoc/internal/format"
	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/types"
)

// Document is what the manager needs from a document.
type Document interface {
	format.Source
	Replace(resolver document.StyleResolver, start, end types.TextPos, in segment.Input) (types.TextPos, error)
	RemoveRegion(start, end types.TextPos) (types.TextPos, error)
}

// Manager handles clipboard operations
type Manager struct {
	backend  Backend
	registry *format.Registry

	// rich holds the last copy in richFormat, valid while the backend still
	// holds plain.
	plain      string
	rich       []byte
	richFormat string
}

// NewManager creates a clipboard manager over backend using the handlers in
// registry.
func NewManager(backend Backend, registry *format.Registry) *Manager {
	return &Manager{backend: backend, registry: registry}
}

// Copy places [start, end) of doc on the clipboard.
func (m *Manager) Copy(doc Document, start, end types.TextPos) error {
	plainHandler, ok := m.registry.Lookup(format.PlainText)
	if !ok {
		return fmt.Errorf("%w: %s", format.ErrUnknownFormat, format.PlainText)
	}
	var plain bytes.Buffer
	if err := plainHandler.Export(doc, start, end, &plain); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	m.rich, m.richFormat = nil, ""
	for _, h := range m.registry.ExportFormats() {
		if !h.CanImport() || h.Format() == format.PlainText {
			continue
		}
		var rich bytes.Buffer
		if err := h.Export(doc, start, end, &rich); err != nil {
			logger.Warnf("Clipboard: %s export failed, copying plain text only: %v", h.Format(), err)
			break
		}
		m.rich, m.richFormat = rich.Bytes(), h.Format()
		break
	}

	if err := m.backend.WriteAll(plain.String()); err != nil {
		return fmt.Errorf("copy: writing clipboard: %w", err)
	}
	m.plain = plain.String()
	logger.Debugf("Clipboard: copied %d bytes (rich: %s)", plain.Len(), m.richFormat)
	return nil
}

// Cut copies [start, end) and then removes it from doc.
func (m *Manager) Cut(doc Document, start, end types.TextPos) (types.TextPos, error) {
	if err := m.Copy(doc, start, end); err != nil {
		return types.NoPos, err
	}
	if end.Before(start) {
		start, end = end, start
	}
	return doc.RemoveRegion(start, end)
}

// Paste replaces [start, end) of doc with the clipboard contents and
// returns the position after them.
func (m *Manager) Paste(doc Document, start, end types.TextPos) (types.TextPos, error) {
	text, err := m.backend.ReadAll()
	if err != nil {
		return types.NoPos, fmt.Errorf("paste: reading clipboard: %w", err)
	}

	h, data := m.source(text)
	in, err := h.Import(bytes.NewReader(data))
	if err != nil {
		return types.NoPos, fmt.Errorf("paste: %w", err)
	}
	return doc.Replace(nil, start, end, in)
}

// source picks the rich copy when the clipboard still holds what Copy put
// there, and plain text otherwise.
func (m *Manager) source(text string) (format.Handler, []byte) {
	if m.rich != nil && text == m.plain {
		if h, ok := m.registry.Lookup(m.richFormat); ok {
			return h, m.rich
		}
	}
	h, ok := m.registry.Lookup(format.PlainText)
	if !ok {
		h = format.NewPlainTextHandler()
	}
	return h, []byte(text)
}
