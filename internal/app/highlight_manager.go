package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bethropolis/richdoc/internal/document"
	"github.com/bethropolis/richdoc/internal/event"
	"github.com/bethropolis/richdoc/internal/highlighter/lang"
	"github.com/bethropolis/richdoc/internal/logger"
)

const highlightDebounceDuration = 65 * time.Millisecond

// HighlightingManager re-highlights the document after edits, debounced.
type HighlightingManager struct {
	app      *App
	debounce time.Duration

	mu         sync.Mutex // Protects the fields below
	language   *lang.Language
	timer      *time.Timer
	pendingCtx context.Context
	cancelFunc context.CancelFunc
	pending    int
	onDone     func(applied int, err error)
}

// NewHighlightingManager creates a manager for a's document.
func NewHighlightingManager(a *App, debounce time.Duration) *HighlightingManager {
	return &HighlightingManager{app: a, debounce: debounce}
}

// SetLanguage selects the grammar. nil turns re-highlighting off.
func (hm *HighlightingManager) SetLanguage(l *lang.Language) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.language = l
}

// SetOnDone installs a callback run after each debounced update.
func (hm *HighlightingManager) SetOnDone(fn func(applied int, err error)) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.onDone = fn
}

// AccumulateEdit records an edit and starts or resets the debounce timer.
func (hm *HighlightingManager) AccumulateEdit(change event.TextChange) {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	if hm.language == nil {
		return
	}
	hm.pending++
	logger.DebugTagf("highlight", "accumulated edit %v-%v (%d pending)", change.Start, change.End, hm.pending)

	if hm.timer != nil {
		hm.timer.Reset(hm.debounce)
		return
	}
	if hm.cancelFunc != nil {
		hm.cancelFunc()
	}
	hm.pendingCtx, hm.cancelFunc = context.WithCancel(context.Background())
	hm.timer = time.AfterFunc(hm.debounce, hm.runHighlightUpdate)
}

func (hm *HighlightingManager) runHighlightUpdate() {
	hm.mu.Lock()
	hm.timer = nil
	if hm.pending == 0 || hm.pendingCtx == nil {
		hm.mu.Unlock()
		return
	}
	hm.pending = 0
	ctx := hm.pendingCtx
	onDone := hm.onDone
	hm.mu.Unlock()

	applied, err := hm.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		logger.DebugTagf("highlight", "highlight update cancelled")
	case err != nil:
		logger.Warnf("HighlightingManager: background highlighting failed: %v", err)
	}
	if onDone != nil {
		onDone(applied, err)
	}
}

// Run highlights the whole document synchronously.
func (hm *HighlightingManager) Run(ctx context.Context) (int, error) {
	hm.mu.Lock()
	l := hm.language
	hm.mu.Unlock()

	var applied int
	err := hm.app.Edit(func(doc *document.Document) error {
		if !doc.IsEditable() {
			logger.Warnf("HighlightingManager: document is read-only, styles not applied")
			return nil
		}
		var err error
		applied, err = hm.app.highlighter.Highlight(ctx, doc, l, hm.app.themes.Current())
		return err
	})
	return applied, err
}

// Shutdown cancels any pending task.
func (hm *HighlightingManager) Shutdown() {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	if hm.cancelFunc != nil {
		hm.cancelFunc()
		hm.cancelFunc = nil
	}
	if hm.timer != nil {
		hm.timer.Stop()
		hm.timer = nil
	}
	hm.pendingCtx = nil
}
