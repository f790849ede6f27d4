package highlighter

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bethropolis/richdoc/internal/highlighter/lang"
	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/types"
	"github.com/bethropolis/richdoc/internal/utils"
	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoLanguage is returned when highlighting is requested without a grammar.
var ErrNoLanguage = errors.New("no language provided for highlighting")

// Span is one capture mapped onto a single paragraph.
type Span struct {
	Start, End types.TextPos
	Capture    string

	pattern int
}

// Target is the document surface the highlighter writes styles into.
type Target interface {
	Text() string
	DocumentEnd() types.TextPos
	SetStyle(start, end types.TextPos, attrs *style.Attrs) (bool, error)
}

// Styler maps capture names such as "keyword.control" to styles.
type Styler interface {
	Style(name string) *style.Attrs
}

// Highlighter parses text with tree-sitter and runs highlight queries.
// It is not safe for concurrent use.
type Highlighter struct {
	parser *sitter.Parser
}

// New creates a highlighter with the built-in languages registered.
func New() *Highlighter {
	RegisterLanguages()
	return &Highlighter{parser: sitter.NewParser()}
}

// Spans parses text, which uses "\n" between paragraphs, and returns the
// highlight captures split per paragraph with rune offsets. Spans are
// ordered by query pattern so that later patterns override earlier ones
// when applied in order.
func (h *Highlighter) Spans(ctx context.Context, text string, l *lang.Language) ([]Span, error) {
	if l == nil || l.TreeSitterLang == nil {
		return nil, ErrNoLanguage
	}
	query, err := l.Query()
	if err != nil {
		return nil, err
	}

	h.parser.SetLanguage(l.TreeSitterLang)
	tree, err := h.parser.ParseCtx(ctx, nil, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.Name, err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	lines := strings.Split(text, "\n")
	var spans []Span
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			name := query.CaptureNameForId(c.Index)
			spans = appendCapture(spans, lines, c.Node, name, int(match.PatternIndex))
		}
	}

	slices.SortStableFunc(spans, func(a, b Span) int { return a.pattern - b.pattern })
	logger.DebugTagf("highlight", "%s: %d spans", l.Name, len(spans))
	return spans, nil
}

// appendCapture converts the node's byte points to rune offsets, one span per
// row the node covers. Empty pieces are dropped.
func appendCapture(spans []Span, lines []string, node *sitter.Node, name string, pattern int) []Span {
	sp, ep := node.StartPoint(), node.EndPoint()
	first, last := int(sp.Row), int(ep.Row)
	if last >= len(lines) {
		last = len(lines) - 1
	}
	for row := first; row <= last; row++ {
		line := lines[row]
		from, to := 0, utils.RuneLen(line)
		if row == first {
			from = utils.ByteOffsetToRuneIndex(line, int(sp.Column))
		}
		if row == int(ep.Row) {
			to = utils.ByteOffsetToRuneIndex(line, int(ep.Column))
		}
		if to <= from {
			continue
		}
		spans = append(spans, Span{
			Start:   types.NewTextPos(row, from),
			End:     types.NewTextPos(row, to),
			Capture: name,
			pattern: pattern,
		})
	}
	return spans
}

// Highlight resets the document's character styles to the theme's
// "Default" style and applies one theme style per capture. Paragraph
// attributes are left alone. It returns the number of spans applied.
func (h *Highlighter) Highlight(ctx context.Context, doc Target, l *lang.Language, th Styler) (int, error) {
	spans, err := h.Spans(ctx, doc.Text(), l)
	if err != nil {
		return 0, err
	}

	base, _ := th.Style("Default").Split()
	if _, err := doc.SetStyle(types.Zero, doc.DocumentEnd(), base); err != nil {
		return 0, fmt.Errorf("reset styles: %w", err)
	}

	cache := make(map[string]*style.Attrs)
	for _, s := range spans {
		attrs, ok := cache[s.Capture]
		if !ok {
			attrs, _ = base.Combine(th.Style(s.Capture)).Split()
			cache[s.Capture] = attrs
		}
		if _, err := doc.SetStyle(s.Start, s.End, attrs); err != nil {
			return 0, fmt.Errorf("apply %s at %v: %w", s.Capture, s.Start, err)
		}
	}
	return len(spans), nil
}
