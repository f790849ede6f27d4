// Package style holds style attribute sets and the cache that makes equal
// sets share one instance.
package style

import (
	"fmt"
	"sort"
	"strings"
)

// Attrs maps attribute keys to values. A key may be present with a nil value,
// which is distinct from the key being absent.
//
// Attrs is immutable by convention once it is shared: Set and Apply are meant
// for building a set, and fail with ErrFrozen after the set has been interned.
type Attrs struct {
	values    map[Key]any
	canonical string
	rendered  bool
	frozen    bool
}

// Empty is the shared empty set.
var Empty = &Attrs{frozen: true, rendered: true}

// New returns an empty, mutable set.
func New() *Attrs {
	return &Attrs{}
}

// Of builds a set from alternating key/value pairs. It panics on a type
// mismatch and is meant for literals in code and tests.
func Of(pairs ...any) *Attrs {
	if len(pairs)%2 != 0 {
		panic("style.Of: odd number of arguments")
	}
	a := New()
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(Key)
		if !ok {
			panic(fmt.Sprintf("style.Of: argument %d is %T, not Key", i, pairs[i]))
		}
		if err := a.Set(k, pairs[i+1]); err != nil {
			panic(err)
		}
	}
	return a
}

// Get returns the value for key and whether the key is present.
func (a *Attrs) Get(key Key) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Bool returns a boolean attribute, false when absent or null.
func (a *Attrs) Bool(key Key) bool {
	v, _ := a.Get(key)
	b, _ := v.(bool)
	return b
}

// Set records value under key.
func (a *Attrs) Set(key Key, value any) error {
	if a.frozen {
		return ErrFrozen
	}
	v, err := key.normalize(value)
	if err != nil {
		return err
	}
	if a.values == nil {
		a.values = make(map[Key]any)
	}
	a.values[key] = v
	a.rendered = false
	return nil
}

// Remove deletes key from the set.
func (a *Attrs) Remove(key Key) error {
	if a.frozen {
		return ErrFrozen
	}
	delete(a.values, key)
	a.rendered = false
	return nil
}

// Len is the number of keys present.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

func (a *Attrs) IsEmpty() bool { return a.Len() == 0 }

// IsFrozen reports whether the set has been interned.
func (a *Attrs) IsFrozen() bool { return a != nil && a.frozen }

// Keys returns the present keys sorted by name.
func (a *Attrs) Keys() []Key {
	if a == nil {
		return nil
	}
	keys := make([]Key, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].name < keys[j].name })
	return keys
}

// Clone returns a mutable copy.
func (a *Attrs) Clone() *Attrs {
	c := New()
	if a == nil || len(a.values) == 0 {
		return c
	}
	c.values = make(map[Key]any, len(a.values))
	for k, v := range a.values {
		c.values[k] = v
	}
	return c
}

// Combine returns a new set holding a's entries overridden by other's.
func (a *Attrs) Combine(other *Attrs) *Attrs {
	c := a.Clone()
	if other != nil {
		for k, v := range other.values {
			if c.values == nil {
				c.values = make(map[Key]any, len(other.values))
			}
			c.values[k] = v
		}
	}
	return c
}

// Apply merges other into a in place.
func (a *Attrs) Apply(other *Attrs) error {
	if a.frozen {
		return ErrFrozen
	}
	if other.Len() == 0 {
		return nil
	}
	if a.values == nil {
		a.values = make(map[Key]any, len(other.values))
	}
	for k, v := range other.values {
		a.values[k] = v
	}
	a.rendered = false
	return nil
}

// Equal compares by content.
func (a *Attrs) Equal(other *Attrs) bool {
	if a == other {
		return true
	}
	if a.Len() != other.Len() {
		return false
	}
	if a.Len() == 0 {
		return true
	}
	for k, v := range a.values {
		ov, ok := other.values[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Split separates character attributes from paragraph attributes.
func (a *Attrs) Split() (character, paragraph *Attrs) {
	character, paragraph = New(), New()
	if a == nil {
		return character, paragraph
	}
	for k, v := range a.values {
		if k.IsParagraph() {
			paragraph.values = setValue(paragraph.values, k, v)
		} else {
			character.values = setValue(character.values, k, v)
		}
	}
	return character, paragraph
}

func setValue(m map[Key]any, k Key, v any) map[Key]any {
	if m == nil {
		m = make(map[Key]any)
	}
	m[k] = v
	return m
}

// CanonicalForm renders the set deterministically, one key=value pair per
// key in name order. Equal sets have equal canonical forms.
func (a *Attrs) CanonicalForm() string {
	if a == nil {
		return ""
	}
	if a.rendered {
		return a.canonical
	}
	var sb strings.Builder
	for i, k := range a.Keys() {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(k.name)
		sb.WriteByte('=')
		sb.WriteString(k.Format(a.values[k]))
	}
	a.canonical = sb.String()
	a.rendered = true
	return a.canonical
}

func (a *Attrs) String() string {
	return "{" + a.CanonicalForm() + "}"
}
