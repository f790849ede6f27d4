// internal/event/event.go
package event

import "github.com/bethropolis/richdoc/internal/types"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// TypeTextChanged fires after a replace changed the document's text.
	TypeTextChanged
	// TypeStyleChanged fires after styles changed without a text change.
	TypeStyleChanged
	// TypeEditableChanged fires when the editable flag flips.
	TypeEditableChanged
)

func (t Type) String() string {
	switch t {
	case TypeTextChanged:
		return "TextChanged"
	case TypeStyleChanged:
		return "StyleChanged"
	case TypeEditableChanged:
		return "EditableChanged"
	}
	return "Unknown"
}

// Event is the structure passed to handlers.
type Event struct {
	Type Type
	Data any
}

// TextChange describes a completed replace. Start and End bound the replaced
// range as it was before the edit. CharsAddedTop counts characters inserted
// on the start paragraph, LinesAdded the paragraphs inserted, and
// CharsAddedBottom the characters inserted at the head of the last inserted
// paragraph. The numbers are enough to patch a derived view incrementally.
type TextChange struct {
	Start            types.TextPos
	End              types.TextPos
	CharsAddedTop    int
	LinesAdded       int
	CharsAddedBottom int
}

// StyleChange covers the range whose styles changed.
type StyleChange struct {
	Start types.TextPos
	End   types.TextPos
}

// EditableChange carries the new editable state.
type EditableChange struct {
	Editable bool
}
