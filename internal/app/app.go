package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bethropolis/richdoc/internal/clipboard"
	"github.com/bethropolis/richdoc/internal/config"
	"github.com/bethropolis/richdoc/internal/document"
	"github.com/bethropolis/richdoc/internal/event"
	"github.com/bethropolis/richdoc/internal/find"
	"github.com/bethropolis/richdoc/internal/format"
	"github.com/bethropolis/richdoc/internal/highlighter"
	"github.com/bethropolis/richdoc/internal/highlighter/lang"
	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/theme"
	"github.com/bethropolis/richdoc/internal/types"
)

// App wires a document to the format registry, themes, clipboard and
// highlighter described by a configuration.
type App struct {
	cfg         *config.Config
	registry    *format.Registry
	themes      *theme.Manager
	clipboard   *clipboard.Manager
	highlighter *highlighter.Highlighter

	// mu guards doc; the highlighting manager edits it from a timer goroutine.
	mu                  sync.Mutex
	doc                 *document.Document
	filePath            string
	language            *lang.Language
	highlightingManager *HighlightingManager
	subscriptions       []event.SubscriptionID
}

// New creates an application instance with an empty document.
func New(cfg *config.Config) (*App, error) {
	themes := theme.NewManager()
	if cfg.Theme.Dir != "" {
		if _, err := themes.LoadThemesFromDir(cfg.Theme.Dir); err != nil {
			return nil, err
		}
	}
	if err := themes.SetTheme(cfg.Theme.Name); err != nil {
		return nil, err
	}

	registry := format.NewDefaultRegistry()
	if _, err := registry.Resolve(cfg.Document.DefaultFormat); err != nil {
		return nil, fmt.Errorf("default format: %w", err)
	}

	a := &App{
		cfg:         cfg,
		registry:    registry,
		themes:      themes,
		clipboard:   clipboard.NewManager(clipboard.NewBackend(cfg.Clipboard.System), registry),
		highlighter: highlighter.New(),
	}
	a.highlightingManager = NewHighlightingManager(a, highlightDebounceDuration)
	a.setDocument(document.New(document.WithResolver(themes.Current())))
	return a, nil
}

// setDocument swaps in doc and moves the event subscriptions over to it.
func (a *App) setDocument(doc *document.Document) {
	if a.doc != nil {
		for _, id := range a.subscriptions {
			a.doc.Events().Unsubscribe(id)
		}
	}
	a.doc = doc
	a.subscriptions = a.subscribeEvents(doc.Events())
}

// Document returns the current document. Callers editing it while
// highlighting is active should go through Edit.
func (a *App) Document() *document.Document { return a.doc }

func (a *App) Registry() *format.Registry { return a.registry }
func (a *App) Themes() *theme.Manager     { return a.themes }
func (a *App) FilePath() string           { return a.filePath }

// Edit runs fn with exclusive access to the document.
func (a *App) Edit(fn func(doc *document.Document) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.doc)
}

// handlerFor picks the format named by name, or else by the extension of
// path. A file whose extension no format claims (source code, say) is plain
// text; a path without extension gets the configured default.
func (a *App) handlerFor(name, path string) (format.Handler, error) {
	if name != "" {
		return a.registry.Resolve(name)
	}
	if ext := filepath.Ext(path); ext != "" {
		if h, err := a.registry.ByExtension(ext); err == nil {
			return h, nil
		}
		logger.Debugf("App: no format for extension '%s', using plain text", ext)
		return a.registry.Resolve(format.PlainText)
	}
	return a.registry.Resolve(a.cfg.Document.DefaultFormat)
}

// Load replaces the document with the content of r in the given format.
// path only serves format and language detection and may be empty. The new
// document is editable; ApplyEditable applies the configured state.
func (a *App) Load(r io.Reader, formatName, path string) error {
	h, err := a.handlerFor(formatName, path)
	if err != nil {
		return err
	}
	if !h.CanImport() {
		return fmt.Errorf("%w: import %s", format.ErrUnsupported, h.Format())
	}
	in, err := h.Import(r)
	if err != nil {
		return fmt.Errorf("import %s: %w", h.Format(), err)
	}

	doc := document.New(document.WithResolver(a.themes.Current()))
	if _, err := doc.Replace(nil, types.Zero, doc.DocumentEnd(), in); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	a.mu.Lock()
	a.setDocument(doc)
	a.filePath = path
	a.language = lang.GetForFile(path)
	a.mu.Unlock()

	logger.Infof("App: loaded %d paragraphs as %s", doc.Size(), h.Format())
	return nil
}

// Open loads the file at path. "-" reads standard input.
func (a *App) Open(path, formatName string) error {
	if path == "-" {
		return a.Load(os.Stdin, formatName, "")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return a.Load(f, formatName, path)
}

// Save writes the whole document to w in the given format.
func (a *App) Save(w io.Writer, formatName, path string) error {
	h, err := a.handlerFor(formatName, path)
	if err != nil {
		return err
	}
	if !h.CanExport() {
		return fmt.Errorf("%w: export %s", format.ErrUnsupported, h.Format())
	}
	return a.Edit(func(doc *document.Document) error {
		return h.Export(doc, types.Zero, doc.DocumentEnd(), w)
	})
}

// SaveFile writes the document to path. The file is only replaced once the
// export succeeded.
func (a *App) SaveFile(path, formatName string) error {
	var buf bytes.Buffer
	if err := a.Save(&buf, formatName, path); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Language resolves name, or the loaded file's language when name is empty.
func (a *App) Language(name string) (*lang.Language, error) {
	if name == "" {
		if a.language == nil {
			return nil, fmt.Errorf("no language for '%s': %w", a.filePath, highlighter.ErrNoLanguage)
		}
		return a.language, nil
	}
	l := lang.GetByName(name)
	if l == nil {
		l = lang.GetForFile("x." + name)
	}
	if l == nil {
		return nil, fmt.Errorf("unknown language '%s': %w", name, highlighter.ErrNoLanguage)
	}
	return l, nil
}

// Highlight applies syntax styles to the whole document now and keeps them
// current on later edits.
func (a *App) Highlight(ctx context.Context, language string) (int, error) {
	l, err := a.Language(language)
	if err != nil {
		return 0, err
	}
	a.highlightingManager.SetLanguage(l)
	return a.highlightingManager.Run(ctx)
}

// ApplyEditable sets the document's editable flag from the configuration.
func (a *App) ApplyEditable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc.SetEditable(a.cfg.Document.Editable)
}

// Copy puts the whole document on the clipboard.
func (a *App) Copy() error {
	return a.Edit(func(doc *document.Document) error {
		return a.clipboard.Copy(doc, types.Zero, doc.DocumentEnd())
	})
}

// Paste inserts the clipboard content at pos.
func (a *App) Paste(pos types.TextPos) (types.TextPos, error) {
	var end types.TextPos
	err := a.Edit(func(doc *document.Document) error {
		var err error
		end, err = a.clipboard.Paste(doc, pos, pos)
		return err
	})
	return end, err
}

// Find returns the matches of the regular expression term.
func (a *App) Find(term string) ([]find.Match, error) {
	var matches []find.Match
	err := a.Edit(func(doc *document.Document) error {
		m := find.NewManager(doc)
		if _, err := m.Search(term); err != nil {
			return err
		}
		matches = m.Matches()
		return nil
	})
	return matches, err
}

// Substitute runs a "/pattern/replacement/[g]" command over the document.
func (a *App) Substitute(cmd string) (int, error) {
	pattern, replacement, global, err := find.ParseSubstituteCommand(cmd)
	if err != nil {
		return 0, err
	}
	var n int
	err = a.Edit(func(doc *document.Document) error {
		var err error
		n, err = find.NewManager(doc).Replace(pattern, replacement, global)
		return err
	})
	return n, err
}

// Shutdown stops pending background work.
func (a *App) Shutdown() {
	a.highlightingManager.Shutdown()
}
