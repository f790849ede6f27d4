package document

import "github.com/bethropolis/richdoc/internal/event"

// Listener is notified after every completed change. Implementations must
// be comparable (typically a pointer) so that RemoveListener can find them.
type Listener interface {
	OnTextChanged(change event.TextChange)
	OnStyleChanged(change event.StyleChange)
}

type listenerEntry struct {
	l       Listener
	textID  event.SubscriptionID
	styleID event.SubscriptionID
}

// AddListener subscribes l to text and style changes. Listeners run in the
// order they were added.
func (d *Document) AddListener(l Listener) {
	e := listenerEntry{l: l}
	e.textID = d.events.Subscribe(event.TypeTextChanged, func(ev event.Event) {
		if c, ok := ev.Data.(event.TextChange); ok {
			l.OnTextChanged(c)
		}
	})
	e.styleID = d.events.Subscribe(event.TypeStyleChanged, func(ev event.Event) {
		if c, ok := ev.Data.(event.StyleChange); ok {
			l.OnStyleChanged(c)
		}
	})
	d.listeners = append(d.listeners, e)
}

// RemoveListener unsubscribes l. It reports whether l was subscribed.
func (d *Document) RemoveListener(l Listener) bool {
	for i, e := range d.listeners {
		if e.l != l {
			continue
		}
		d.events.Unsubscribe(e.textID)
		d.events.Unsubscribe(e.styleID)
		d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
		return true
	}
	return false
}
