package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// CSS renders the set as CSS declarations ordered by attribute name.
// Attributes without a CSS equivalent are skipped.
func (a *Attrs) CSS() string {
	var decls []string
	var decoration []string
	for _, k := range a.Keys() {
		v := a.values[k]
		if v == nil {
			continue
		}
		switch k {
		case Bold:
			if v.(bool) {
				decls = append(decls, "font-weight: bold")
			}
		case Italic:
			if v.(bool) {
				decls = append(decls, "font-style: italic")
			}
		case Underline:
			if v.(bool) {
				decoration = append(decoration, "underline")
			}
		case StrikeThrough:
			if v.(bool) {
				decoration = append(decoration, "line-through")
			}
		case FontFamily:
			decls = append(decls, "font-family: "+strconv.Quote(v.(string)))
		case FontSize:
			decls = append(decls, "font-size: "+pt(v.(float64)))
		case TextColor:
			decls = append(decls, "color: "+FormatColor(v.(tcell.Color)))
		case Background:
			decls = append(decls, "background-color: "+FormatColor(v.(tcell.Color)))
		case TextAlignment:
			decls = append(decls, "text-align: "+v.(Alignment).String())
		case ParagraphDirection:
			decls = append(decls, "direction: "+v.(Direction).String())
		case LineSpacing:
			decls = append(decls, "line-height: "+strconv.FormatFloat(v.(float64), 'g', -1, 64))
		case SpaceAbove:
			decls = append(decls, "margin-top: "+pt(v.(float64)))
		case SpaceBelow:
			decls = append(decls, "margin-bottom: "+pt(v.(float64)))
		case SpaceLeft:
			decls = append(decls, "margin-left: "+pt(v.(float64)))
		case SpaceRight:
			decls = append(decls, "margin-right: "+pt(v.(float64)))
		case FirstLineIndent:
			decls = append(decls, "text-indent: "+pt(v.(float64)))
		}
	}
	if len(decoration) > 0 {
		decls = append(decls, "text-decoration: "+strings.Join(decoration, " "))
	}
	return strings.Join(decls, "; ")
}

func pt(v float64) string {
	return fmt.Sprintf("%spt", strconv.FormatFloat(v, 'g', -1, 64))
}

// TcellStyle applies the attributes tcell can display on top of base.
func (a *Attrs) TcellStyle(base tcell.Style) tcell.Style {
	s := base
	if v, ok := a.Get(Bold); ok && v != nil {
		s = s.Bold(v.(bool))
	}
	if v, ok := a.Get(Italic); ok && v != nil {
		s = s.Italic(v.(bool))
	}
	if v, ok := a.Get(Underline); ok && v != nil {
		s = s.Underline(v.(bool))
	}
	if v, ok := a.Get(StrikeThrough); ok && v != nil {
		s = s.StrikeThrough(v.(bool))
	}
	if v, ok := a.Get(TextColor); ok && v != nil {
		s = s.Foreground(v.(tcell.Color))
	}
	if v, ok := a.Get(Background); ok && v != nil {
		s = s.Background(v.(tcell.Color))
	}
	return s
}
