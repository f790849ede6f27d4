package format

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/richdoc/internal/logger"
)

// Registry holds handlers keyed by format identifier.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// NewDefaultRegistry returns a registry with the native, HTML and plain
// text handlers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewNativeHandler())
	r.Register(NewHTMLHandler())
	r.Register(NewPlainTextHandler())
	return r
}

// Register adds h, replacing any handler with the same format.
func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[h.Format()]; ok {
		logger.DebugTagf("format", "replacing handler for %s", h.Format())
	}
	r.handlers[h.Format()] = h
}

// Lookup finds the handler for a format identifier.
func (r *Registry) Lookup(format string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[format]
	return h, ok
}

// Formats returns every handler, highest priority first. Equal priorities
// are ordered by format identifier, descending.
func (r *Registry) Formats() []Handler {
	r.mu.RLock()
	out := make([]Handler, 0, len(r.handlers))
	for _, h := range r.handlers {
		out = append(out, h)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority() != out[j].Priority() {
			return out[i].Priority() > out[j].Priority()
		}
		return out[i].Format() > out[j].Format()
	})
	return out
}

// ImportFormats returns the handlers that can import, in Formats order.
func (r *Registry) ImportFormats() []Handler {
	return filter(r.Formats(), Handler.CanImport)
}

// ExportFormats returns the handlers that can export, in Formats order.
func (r *Registry) ExportFormats() []Handler {
	return filter(r.Formats(), Handler.CanExport)
}

func filter(hs []Handler, keep func(Handler) bool) []Handler {
	out := hs[:0]
	for _, h := range hs {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

// Default returns the highest-priority handler, or nil when empty.
func (r *Registry) Default() Handler {
	if hs := r.Formats(); len(hs) > 0 {
		return hs[0]
	}
	return nil
}

// ByExtension finds the highest-priority handler for a file extension
// (".txt", case-insensitive).
func (r *Registry) ByExtension(ext string) (Handler, error) {
	ext = strings.ToLower(ext)
	for _, h := range r.Formats() {
		for _, e := range h.Extensions() {
			if e == ext {
				return h, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: extension '%s'", ErrUnknownFormat, ext)
}

// Resolve finds a handler by format identifier or, failing that, by
// extension.
func (r *Registry) Resolve(nameOrExt string) (Handler, error) {
	if h, ok := r.Lookup(nameOrExt); ok {
		return h, nil
	}
	if !strings.HasPrefix(nameOrExt, ".") {
		if h, err := r.ByExtension("." + nameOrExt); err == nil {
			return h, nil
		}
	}
	return r.ByExtension(nameOrExt)
}
