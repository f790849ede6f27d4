// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/style"
)

// TomlStyleDef represents a single style definition in the TOML file.
// Pointers tell a missing value from a zero one.
type TomlStyleDef struct {
	Fg         *string  `toml:"fg"`
	Bg         *string  `toml:"bg"`
	Bold       *bool    `toml:"bold"`
	Italic     *bool    `toml:"italic"`
	Underline  *bool    `toml:"underline"`
	Strike     *bool    `toml:"strike"`
	FontFamily *string  `toml:"font_family"`
	FontSize   *float64 `toml:"font_size"`

	Alignment   *string  `toml:"alignment"`
	Direction   *string  `toml:"direction"`
	LineSpacing *float64 `toml:"line_spacing"`
	SpaceAbove  *float64 `toml:"space_above"`
	SpaceBelow  *float64 `toml:"space_below"`
	SpaceLeft   *float64 `toml:"space_left"`
	SpaceRight  *float64 `toml:"space_right"`
	Indent      *float64 `toml:"indent"`
	Bullet      *string  `toml:"bullet"`

	// CSS holds extra declarations applied last.
	CSS *string `toml:"css"`
}

// TomlTheme represents the structure of a theme file
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML file and converts it to a Theme object.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	fallbackName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	t, err := ParseTheme(string(data), fallbackName)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	logger.Debugf("Successfully loaded theme '%s' from '%s'", t.Name, filePath)
	return t, nil
}

// ParseTheme decodes theme TOML. Every style inherits from the theme's
// "Default" style. fallbackName is used when the data has no name.
func ParseTheme(data, fallbackName string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.Decode(data, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': unrecognized keys: %v", tomlTheme.Name, undecoded)
	}
	if tomlTheme.Name == "" {
		tomlTheme.Name = fallbackName
		logger.Debugf("Theme missing 'name', using '%s'", fallbackName)
	}

	t := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]*style.Attrs, len(tomlTheme.Styles)+1),
	}

	base := style.Empty
	if def, ok := tomlTheme.Styles["Default"]; ok {
		base, err = convertTomlStyle(def, style.Empty)
		if err != nil {
			return nil, fmt.Errorf("style 'Default': %w", err)
		}
	}
	t.Styles["Default"] = base

	for name, def := range tomlTheme.Styles {
		if name == "Default" {
			continue
		}
		s, err := convertTomlStyle(def, base)
		if err != nil {
			logger.Warnf("Theme '%s': failed to parse style '%s', skipping: %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = s
	}
	return t, nil
}

// convertTomlStyle converts a TOML definition into attributes on top of base.
func convertTomlStyle(def TomlStyleDef, base *style.Attrs) (*style.Attrs, error) {
	a := base.Clone()

	colors := []struct {
		v *string
		k style.Key
	}{{def.Fg, style.TextColor}, {def.Bg, style.Background}}
	for _, c := range colors {
		if c.v == nil {
			continue
		}
		color, err := style.ParseColor(*c.v)
		if err != nil {
			return nil, fmt.Errorf("invalid color '%s': %w", *c.v, err)
		}
		_ = a.Set(c.k, color)
	}

	flags := []struct {
		v *bool
		k style.Key
	}{
		{def.Bold, style.Bold}, {def.Italic, style.Italic},
		{def.Underline, style.Underline}, {def.Strike, style.StrikeThrough},
	}
	for _, f := range flags {
		if f.v != nil {
			_ = a.Set(f.k, *f.v)
		}
	}

	sizes := []struct {
		v *float64
		k style.Key
	}{
		{def.FontSize, style.FontSize}, {def.LineSpacing, style.LineSpacing},
		{def.SpaceAbove, style.SpaceAbove}, {def.SpaceBelow, style.SpaceBelow},
		{def.SpaceLeft, style.SpaceLeft}, {def.SpaceRight, style.SpaceRight},
		{def.Indent, style.FirstLineIndent},
	}
	for _, s := range sizes {
		if s.v != nil {
			_ = a.Set(s.k, *s.v)
		}
	}

	if def.FontFamily != nil {
		_ = a.Set(style.FontFamily, *def.FontFamily)
	}
	if def.Bullet != nil {
		_ = a.Set(style.Bullet, *def.Bullet)
	}
	if def.Alignment != nil {
		al, err := style.ParseAlignment(*def.Alignment)
		if err != nil {
			return nil, err
		}
		_ = a.Set(style.TextAlignment, al)
	}
	if def.Direction != nil {
		d, err := style.ParseDirection(*def.Direction)
		if err != nil {
			return nil, err
		}
		_ = a.Set(style.ParagraphDirection, d)
	}
	if def.CSS != nil {
		decls, err := ParseDeclarations(*def.CSS)
		if err != nil {
			return nil, err
		}
		_ = a.Apply(decls)
	}
	return a, nil
}
