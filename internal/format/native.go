package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/types"
)

// nativeVersion is written to every native document.
const nativeVersion = 1

// nativeDoc is the TOML layout of the native format: a version followed by
// an array of segment tables.
//
//	version = 1
//	[[segment]]
//	kind = "text"
//	text = "Hello"
//	[segment.attrs]
//	bold = true
type nativeDoc struct {
	Version  int             `toml:"version"`
	Segments []nativeSegment `toml:"segment"`
}

type nativeSegment struct {
	Kind  string         `toml:"kind"`
	Text  string         `toml:"text,omitempty"`
	Attrs map[string]any `toml:"attrs,omitempty"`
}

type nativeHandler struct{}

// NewNativeHandler handles the native format, which keeps every style and
// paragraph attribute. Embedded objects cannot be serialized and are
// dropped on export.
func NewNativeHandler() Handler { return nativeHandler{} }

func (nativeHandler) Format() string       { return Native }
func (nativeHandler) Priority() int        { return 2000 }
func (nativeHandler) Extensions() []string { return []string{".rdoc", ".toml"} }
func (nativeHandler) CanImport() bool      { return true }
func (nativeHandler) CanExport() bool      { return true }

func (nativeHandler) Export(src Source, start, end types.TextPos, w io.Writer) error {
	doc := nativeDoc{Version: nativeVersion}
	skipped := 0
	err := src.ExportText(start, end, segment.OutputFunc(func(s segment.Segment) error {
		switch s.Kind() {
		case segment.KindText:
			doc.Segments = append(doc.Segments, nativeSegment{
				Kind:  s.Kind().String(),
				Text:  s.Text(),
				Attrs: encodeAttrs(s.Style().Attrs),
			})
		case segment.KindLineBreak:
			doc.Segments = append(doc.Segments, nativeSegment{Kind: s.Kind().String()})
		case segment.KindParagraphAttributes:
			doc.Segments = append(doc.Segments, nativeSegment{
				Kind:  s.Kind().String(),
				Attrs: encodeAttrs(s.Attrs()),
			})
		case segment.KindInlineNode, segment.KindParagraph:
			skipped++
		}
		return nil
	}))
	if err != nil {
		return err
	}
	if skipped > 0 {
		logger.DebugTagf("format", "native export dropped %d embedded objects", skipped)
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encoding native document: %w", err)
	}
	return nil
}

// encodeAttrs converts a set to TOML primitives keyed by attribute name.
// Null values have no TOML form and are left out.
func encodeAttrs(a *style.Attrs) map[string]any {
	if a.IsEmpty() {
		return nil
	}
	out := make(map[string]any, a.Len())
	for _, k := range a.Keys() {
		v, _ := a.Get(k)
		if v == nil {
			continue
		}
		out[k.Name()] = k.Encode(v)
	}
	return out
}

func (nativeHandler) Import(r io.Reader) (segment.Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading native document: %w", err)
	}
	var doc nativeDoc
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing native document: %w", err)
	}
	if doc.Version > nativeVersion {
		return nil, fmt.Errorf("native document version %d is newer than %d", doc.Version, nativeVersion)
	}

	segs := make([]segment.Segment, 0, len(doc.Segments))
	for i, ns := range doc.Segments {
		switch ns.Kind {
		case segment.KindText.String():
			attrs, err := decodeAttrs(ns.Attrs)
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
			segs = append(segs, segment.Split(ns.Text, segment.StyleInfo{Attrs: attrs})...)
		case segment.KindLineBreak.String():
			segs = append(segs, segment.LineBreak())
		case segment.KindParagraphAttributes.String():
			attrs, err := decodeAttrs(ns.Attrs)
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
			segs = append(segs, segment.ParagraphAttributes(attrs))
		default:
			return nil, fmt.Errorf("segment %d: unknown kind '%s'", i, ns.Kind)
		}
	}
	return segment.FromSlice(segs...), nil
}

func decodeAttrs(m map[string]any) (*style.Attrs, error) {
	a := style.New()
	for name, raw := range m {
		k, ok := style.KeyByName(name)
		if !ok {
			logger.WarnTagf("format", "ignoring unknown attribute '%s'", name)
			continue
		}
		v, err := k.Decode(raw)
		if err != nil {
			return nil, err
		}
		if err := a.Set(k, v); err != nil {
			return nil, err
		}
	}
	return a, nil
}
