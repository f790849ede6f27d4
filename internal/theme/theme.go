// internal/theme/theme.go
package theme

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/style"
)

// Theme is a set of named styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]*style.Attrs
}

// Style looks up a named style. A dotted name falls back to its base name
// ("keyword.control" to "keyword"), and anything unknown to "Default".
func (t *Theme) Style(name string) *style.Attrs {
	// 1. Try exact name
	if s, ok := t.Styles[name]; ok {
		return s
	}

	// 2. Try base name (part before first dot)
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if s, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "theme '%s': style '%s' not found, using base '%s'", t.Name, name, baseName)
			return s
		}
	}

	// 3. Return "Default" style
	if s, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "theme '%s': style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return s
	}

	logger.Warnf("Theme '%s': style '%s' and 'Default' style not found", t.Name, name)
	return style.Empty
}

// Has reports whether name, or its base name, is defined.
func (t *Theme) Has(name string) bool {
	if _, ok := t.Styles[name]; ok {
		return true
	}
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		_, ok := t.Styles[name[:dotIndex]]
		return ok
	}
	return false
}

// Resolve combines the named styles in order, then the declarations of
// direct on top. Unknown names are an error; an empty request resolves to
// the empty set, not to "Default".
func (t *Theme) Resolve(direct string, names []string) (*style.Attrs, error) {
	out := style.New()
	for _, name := range names {
		if !t.Has(name) {
			return nil, fmt.Errorf("%w: '%s' in theme '%s'", ErrUnknownStyle, name, t.Name)
		}
		if err := out.Apply(t.Style(name)); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(direct) != "" {
		decls, err := ParseDeclarations(direct)
		if err != nil {
			return nil, err
		}
		if err := out.Apply(decls); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Paper is the built-in light theme.
var Paper Theme

func init() {
	ink := tcell.NewHexColor(0x24292f)
	muted := tcell.NewHexColor(0x6e7781)
	red := tcell.NewHexColor(0xcf222e)
	blue := tcell.NewHexColor(0x0550ae)
	navy := tcell.NewHexColor(0x0a3069)
	purple := tcell.NewHexColor(0x8250df)
	orange := tcell.NewHexColor(0x953800)
	green := tcell.NewHexColor(0x116329)
	shade := tcell.NewHexColor(0xf6f8fa)

	b := func() *style.Builder { return style.NewBuilder().TextColor(ink) }

	Paper = Theme{
		Name: "Paper",
		Styles: map[string]*style.Attrs{
			"Default": b().Build(),

			// --- Document ---
			"heading":   b().Bold(true).FontSize(18).SpaceAbove(12).SpaceBelow(6).Build(),
			"heading.1": b().Bold(true).FontSize(24).SpaceAbove(16).SpaceBelow(8).Build(),
			"heading.2": b().Bold(true).FontSize(20).SpaceAbove(14).SpaceBelow(6).Build(),
			"emphasis":  b().Italic(true).Build(),
			"strong":    b().Bold(true).Build(),
			"link":      b().TextColor(blue).Underline(true).Build(),
			"quote":     b().TextColor(muted).Italic(true).SpaceLeft(16).Build(),
			"code":      b().FontFamily("monospace").Background(shade).Build(),
			"list":      b().Bullet("•").SpaceLeft(12).Build(),
			"deleted":   b().StrikeThrough(true).TextColor(muted).Build(),

			// --- Syntax Highlighting ---
			"keyword":     b().TextColor(red).Build(),
			"string":      b().TextColor(navy).Build(),
			"comment":     b().TextColor(muted).Italic(true).Build(),
			"number":      b().TextColor(blue).Build(),
			"constant":    b().TextColor(blue).Build(),
			"boolean":     b().TextColor(blue).Build(),
			"type":        b().TextColor(orange).Build(),
			"function":    b().TextColor(purple).Build(),
			"variable":    b().Build(),
			"operator":    b().TextColor(red).Build(),
			"punctuation": b().TextColor(muted).Build(),
			"property":    b().TextColor(blue).Build(),
			"attribute":   b().TextColor(green).Build(),
			"label":       b().Build(),
			"namespace":   b().TextColor(orange).Build(),

			"string.escape":    b().TextColor(green).Bold(true).Build(),
			"type.builtin":     b().TextColor(orange).Bold(true).Build(),
			"function.builtin": b().TextColor(purple).Italic(true).Build(),
			"function.method":  b().TextColor(purple).Build(),
			"variable.builtin": b().TextColor(blue).Build(),
		},
	}
}
