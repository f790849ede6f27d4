package document

import "errors"

var (
	// ErrInvalidPosition is returned for a paragraph index outside the
	// document or a negative offset.
	ErrInvalidPosition = errors.New("invalid text position")

	// ErrInvalidRange is returned when a range's start lies after its end.
	ErrInvalidRange = errors.New("invalid range: start after end")

	// ErrLineBreakInText is returned when a text insert contains "\n".
	// Line breaks travel as their own segments.
	ErrLineBreakInText = errors.New("text contains a line break")

	// ErrNodeParagraph is returned for text operations on a paragraph that
	// holds an embedded object.
	ErrNodeParagraph = errors.New("paragraph holds an embedded object")
)
