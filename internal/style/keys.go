package style

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Kind is the declared value type of an attribute.
type Kind uint8

const (
	KindBool Kind = iota
	KindString
	KindFloat
	KindColor
	KindAlignment
	KindDirection
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindColor:
		return "color"
	case KindAlignment:
		return "alignment"
	case KindDirection:
		return "direction"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Scope tells whether an attribute applies to characters or to whole paragraphs.
type Scope uint8

const (
	ScopeCharacter Scope = iota
	ScopeParagraph
)

// Alignment is the value type of TextAlignment.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

var alignmentNames = [...]string{"left", "center", "right", "justify"}

func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return "alignment(" + strconv.Itoa(int(a)) + ")"
}

// Direction is the value type of ParagraphDirection.
type Direction uint8

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Key identifies one style attribute. Keys are comparable values; two keys
// with the same name are the same attribute.
type Key struct {
	name  string
	kind  Kind
	scope Scope
}

func (k Key) Name() string { return k.name }
func (k Key) Kind() Kind   { return k.kind }
func (k Key) Scope() Scope { return k.scope }

// IsParagraph reports whether the key is a paragraph attribute.
func (k Key) IsParagraph() bool { return k.scope == ScopeParagraph }

func (k Key) String() string { return k.name }

var registry = map[string]Key{}

func newKey(name string, kind Kind, scope Scope) Key {
	k := Key{name: name, kind: kind, scope: scope}
	registry[name] = k
	return k
}

// Character attributes.
var (
	Bold          = newKey("bold", KindBool, ScopeCharacter)
	Italic        = newKey("italic", KindBool, ScopeCharacter)
	Underline     = newKey("underline", KindBool, ScopeCharacter)
	StrikeThrough = newKey("strike-through", KindBool, ScopeCharacter)
	FontFamily    = newKey("font-family", KindString, ScopeCharacter)
	FontSize      = newKey("font-size", KindFloat, ScopeCharacter)
	TextColor     = newKey("text-color", KindColor, ScopeCharacter)
)

// Paragraph attributes.
var (
	Background         = newKey("background", KindColor, ScopeParagraph)
	TextAlignment      = newKey("text-alignment", KindAlignment, ScopeParagraph)
	ParagraphDirection = newKey("paragraph-direction", KindDirection, ScopeParagraph)
	LineSpacing        = newKey("line-spacing", KindFloat, ScopeParagraph)
	SpaceAbove         = newKey("space-above", KindFloat, ScopeParagraph)
	SpaceBelow         = newKey("space-below", KindFloat, ScopeParagraph)
	SpaceLeft          = newKey("space-left", KindFloat, ScopeParagraph)
	SpaceRight         = newKey("space-right", KindFloat, ScopeParagraph)
	FirstLineIndent    = newKey("first-line-indent", KindFloat, ScopeParagraph)
	Bullet             = newKey("bullet", KindString, ScopeParagraph)
)

// KeyByName looks up a registered attribute.
func KeyByName(name string) (Key, bool) {
	k, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// AllKeys returns every registered key sorted by name.
func AllKeys() []Key {
	keys := make([]Key, 0, len(registry))
	for _, k := range registry {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].name < keys[j].name })
	return keys
}

// normalize checks v against the key's kind and converts compatible values
// to the canonical Go type for that kind. nil passes through.
func (k Key) normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch k.kind {
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case KindColor:
		if c, ok := v.(tcell.Color); ok {
			return c.TrueColor(), nil
		}
	case KindAlignment:
		if a, ok := v.(Alignment); ok && int(a) < len(alignmentNames) {
			return a, nil
		}
	case KindDirection:
		if d, ok := v.(Direction); ok && d <= RightToLeft {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s wants %s, got %T", ErrTypeMismatch, k.name, k.kind, v)
}

// Format renders a value of this key in the canonical text form used by
// CanonicalForm and by the TOML encoders.
func (k Key) Format(v any) string {
	if v == nil {
		return "null"
	}
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case string:
		return strconv.Quote(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case tcell.Color:
		return FormatColor(x)
	case Alignment:
		return x.String()
	case Direction:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Encode converts a value into a TOML-friendly primitive.
func (k Key) Encode(v any) any {
	switch x := v.(type) {
	case tcell.Color:
		return FormatColor(x)
	case Alignment:
		return x.String()
	case Direction:
		return x.String()
	}
	return v
}

// Decode converts a primitive read from TOML (or a string from a style
// declaration) into a value of the key's kind.
func (k Key) Decode(v any) (any, error) {
	s, isString := v.(string)
	switch k.kind {
	case KindBool:
		if isString {
			b, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrTypeMismatch, k.name, err)
			}
			return b, nil
		}
	case KindFloat:
		if isString {
			f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "pt"), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrTypeMismatch, k.name, err)
			}
			return f, nil
		}
	case KindColor:
		if isString {
			return ParseColor(s)
		}
	case KindAlignment:
		if isString {
			return ParseAlignment(s)
		}
	case KindDirection:
		if isString {
			return ParseDirection(s)
		}
	}
	return k.normalize(v)
}

// ParseColor accepts tcell color names ("red", "darkblue") and #rrggbb.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "default" {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("%w: unknown color %q", ErrTypeMismatch, s)
	}
	return c.TrueColor(), nil
}

// FormatColor renders c as #rrggbb, or "default".
func FormatColor(c tcell.Color) string {
	hex := c.Hex()
	if hex < 0 {
		return "default"
	}
	return fmt.Sprintf("#%06x", hex)
}

func ParseAlignment(s string) (Alignment, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range alignmentNames {
		if name == s {
			return Alignment(i), nil
		}
	}
	return AlignLeft, fmt.Errorf("%w: unknown alignment %q", ErrTypeMismatch, s)
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr", "left-to-right":
		return LeftToRight, nil
	case "rtl", "right-to-left":
		return RightToLeft, nil
	}
	return LeftToRight, fmt.Errorf("%w: unknown direction %q", ErrTypeMismatch, s)
}
