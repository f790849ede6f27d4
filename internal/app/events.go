package app

import (
	"github.com/bethropolis/richdoc/internal/event"
	"github.com/bethropolis/richdoc/internal/logger"
)

func (a *App) subscribeEvents(m *event.Manager) []event.SubscriptionID {
	return []event.SubscriptionID{
		m.Subscribe(event.TypeTextChanged, a.handleTextChanged),
		m.Subscribe(event.TypeStyleChanged, a.handleStyleChanged),
		m.Subscribe(event.TypeEditableChanged, a.handleEditableChanged),
	}
}

// handleTextChanged schedules re-highlighting.
func (a *App) handleTextChanged(e event.Event) {
	if change, ok := e.Data.(event.TextChange); ok {
		a.highlightingManager.AccumulateEdit(change)
	}
}

func (a *App) handleStyleChanged(e event.Event) {
	if change, ok := e.Data.(event.StyleChange); ok {
		logger.DebugTagf("app", "styles changed %v-%v", change.Start, change.End)
	}
}

func (a *App) handleEditableChanged(e event.Event) {
	if change, ok := e.Data.(event.EditableChange); ok {
		logger.Infof("App: document editable: %v", change.Editable)
	}
}
