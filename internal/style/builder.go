package style

import "github.com/gdamore/tcell/v2"

// Builder assembles an attribute set with typed setters.
type Builder struct {
	a *Attrs
}

func NewBuilder() *Builder { return &Builder{a: New()} }

func (b *Builder) set(k Key, v any) *Builder {
	// typed setters cannot mismatch
	_ = b.a.Set(k, v)
	return b
}

func (b *Builder) Bold(on bool) *Builder          { return b.set(Bold, on) }
func (b *Builder) Italic(on bool) *Builder        { return b.set(Italic, on) }
func (b *Builder) Underline(on bool) *Builder     { return b.set(Underline, on) }
func (b *Builder) StrikeThrough(on bool) *Builder { return b.set(StrikeThrough, on) }
func (b *Builder) FontFamily(f string) *Builder   { return b.set(FontFamily, f) }
func (b *Builder) FontSize(pt float64) *Builder   { return b.set(FontSize, pt) }
func (b *Builder) TextColor(c tcell.Color) *Builder {
	return b.set(TextColor, c)
}
func (b *Builder) Background(c tcell.Color) *Builder {
	return b.set(Background, c)
}
func (b *Builder) Alignment(a Alignment) *Builder { return b.set(TextAlignment, a) }
func (b *Builder) Direction(d Direction) *Builder { return b.set(ParagraphDirection, d) }
func (b *Builder) LineSpacing(v float64) *Builder { return b.set(LineSpacing, v) }
func (b *Builder) SpaceAbove(v float64) *Builder  { return b.set(SpaceAbove, v) }
func (b *Builder) SpaceBelow(v float64) *Builder  { return b.set(SpaceBelow, v) }
func (b *Builder) SpaceLeft(v float64) *Builder   { return b.set(SpaceLeft, v) }
func (b *Builder) SpaceRight(v float64) *Builder  { return b.set(SpaceRight, v) }
func (b *Builder) Bullet(s string) *Builder       { return b.set(Bullet, s) }

// Merge copies every entry of other into the set being built.
func (b *Builder) Merge(other *Attrs) *Builder {
	_ = b.a.Apply(other)
	return b
}

// Build returns the assembled set. The builder must not be reused.
func (b *Builder) Build() *Attrs {
	a := b.a
	b.a = nil
	return a
}
