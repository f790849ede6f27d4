package document

import (
	"github.com/bethropolis/richdoc/internal/event"
	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/types"
)

// Marker is a position that follows the text around it as the document is
// edited.
type Marker struct {
	pos types.TextPos
}

// TextPos returns the marker's current position.
func (m *Marker) TextPos() types.TextPos { return m.pos }

// GetMarker registers a marker at pos, clamped into the document.
func (d *Document) GetMarker(pos types.TextPos) *Marker {
	m := &Marker{pos: d.ClampPos(pos)}
	d.markers = append(d.markers, m)
	return m
}

// ReleaseMarker stops updating m. It reports whether m was registered.
func (d *Document) ReleaseMarker(m *Marker) bool {
	for i, other := range d.markers {
		if other == m {
			d.markers = append(d.markers[:i], d.markers[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Document) updateMarkers(c event.TextChange) {
	for _, m := range d.markers {
		moved := shiftPos(m.pos, c)
		if !moved.SameLocation(m.pos) {
			logger.DebugTagf("marker", "marker %v -> %v", m.pos, moved)
		}
		m.pos = moved
	}
}

// shiftPos maps a position from before an edit to after it. Positions up to
// and including the edit start stay. Positions inside the replaced range
// collapse to its start. Positions from the range end on move with the text
// that followed the range.
func shiftPos(p types.TextPos, c event.TextChange) types.TextPos {
	start, end := c.Start, c.End
	if !p.After(start) {
		return p
	}
	if p.Before(end) {
		return start
	}
	if p.Index() == end.Index() {
		var idx, off int
		if c.LinesAdded == 0 {
			idx, off = start.Index(), start.Offset()+c.CharsAddedTop
		} else {
			idx, off = start.Index()+c.LinesAdded, c.CharsAddedBottom
		}
		return types.NewTextPos(idx, off+p.Offset()-end.Offset())
	}
	return types.NewTextPos(p.Index()-(end.Index()-start.Index())+c.LinesAdded, p.Offset())
}
