package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/style"
)

// ParseDeclarations reads a CSS-like declaration list such as
// "font-weight: bold; color: #336699; text-decoration: underline".
// Both the CSS property names produced by style.Attrs.CSS and the attribute
// names themselves ("bold: true") are accepted. Unknown properties are
// skipped with a warning; a bad value is an error.
func ParseDeclarations(s string) (*style.Attrs, error) {
	out := style.New()
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadDeclaration, decl)
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if err := applyDeclaration(out, prop, value); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadDeclaration, prop, err)
		}
	}
	return out, nil
}

var cssProperties = map[string]style.Key{
	"color":            style.TextColor,
	"background-color": style.Background,
	"background":       style.Background,
	"text-align":       style.TextAlignment,
	"direction":        style.ParagraphDirection,
	"line-height":      style.LineSpacing,
	"margin-top":       style.SpaceAbove,
	"margin-bottom":    style.SpaceBelow,
	"margin-left":      style.SpaceLeft,
	"margin-right":     style.SpaceRight,
	"text-indent":      style.FirstLineIndent,
}

func applyDeclaration(a *style.Attrs, prop, value string) error {
	switch prop {
	case "font-weight":
		switch value {
		case "bold", "bolder", "600", "700", "800", "900":
			return a.Set(style.Bold, true)
		case "normal", "lighter", "400":
			return a.Set(style.Bold, false)
		}
		return fmt.Errorf("unknown weight %q", value)
	case "font-style":
		return a.Set(style.Italic, value == "italic" || value == "oblique")
	case "text-decoration", "text-decoration-line":
		for _, part := range strings.Fields(value) {
			switch part {
			case "underline":
				if err := a.Set(style.Underline, true); err != nil {
					return err
				}
			case "line-through":
				if err := a.Set(style.StrikeThrough, true); err != nil {
					return err
				}
			case "none":
				_ = a.Set(style.Underline, false)
				_ = a.Set(style.StrikeThrough, false)
			}
		}
		return nil
	case "font-family":
		if unq, err := strconv.Unquote(value); err == nil {
			value = unq
		}
		return a.Set(style.FontFamily, strings.Trim(value, "'"))
	case "font-size":
		return setDecoded(a, style.FontSize, value)
	}

	if k, ok := cssProperties[prop]; ok {
		return setDecoded(a, k, value)
	}
	if k, ok := style.KeyByName(prop); ok {
		return setDecoded(a, k, value)
	}
	logger.WarnTagf("theme", "ignoring unknown style property '%s'", prop)
	return nil
}

func setDecoded(a *style.Attrs, k style.Key, value string) error {
	if k.Kind() == style.KindString {
		if unq, err := strconv.Unquote(value); err == nil {
			value = unq
		}
		return a.Set(k, value)
	}
	v, err := k.Decode(value)
	if err != nil {
		return err
	}
	return a.Set(k, v)
}
