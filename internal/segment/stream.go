package segment

import "strings"

// Input produces segments for insertion into a document.
type Input interface {
	// Next returns the next segment, or false when the input is exhausted.
	Next() (Segment, bool)
}

// Output consumes segments exported from a document.
type Output interface {
	Append(s Segment) error
}

type sliceInput struct {
	segs []Segment
	pos  int
}

func (in *sliceInput) Next() (Segment, bool) {
	if in.pos >= len(in.segs) {
		return Segment{}, false
	}
	s := in.segs[in.pos]
	in.pos++
	return s, true
}

// FromSlice returns an Input over segs.
func FromSlice(segs ...Segment) Input {
	return &sliceInput{segs: segs}
}

// FromText splits text on "\n" into text and line break segments that all
// carry si. A trailing "\r" before each "\n" is dropped.
func FromText(text string, si StyleInfo) Input {
	return FromSlice(Split(text, si)...)
}

// Split is the slice form of FromText.
func Split(text string, si StyleInfo) []Segment {
	lines := strings.Split(text, "\n")
	segs := make([]Segment, 0, 2*len(lines))
	for i, line := range lines {
		if i > 0 {
			segs = append(segs, LineBreak())
		}
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			segs = append(segs, Text(line, si))
		}
	}
	return segs
}

// OutputFunc adapts a function to Output.
type OutputFunc func(Segment) error

func (f OutputFunc) Append(s Segment) error { return f(s) }

// Collector is an Output that keeps every segment it receives.
type Collector struct {
	Segments []Segment
}

func (c *Collector) Append(s Segment) error {
	c.Segments = append(c.Segments, s)
	return nil
}

// Input replays the collected segments.
func (c *Collector) Input() Input {
	return FromSlice(c.Segments...)
}

// PlainText is the plain text of the collected segments.
func (c *Collector) PlainText() string {
	return PlainText(c.Segments)
}
