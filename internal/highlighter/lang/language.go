package lang

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/bethropolis/richdoc/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoQuery is returned when a language has no highlight query available.
var ErrNoQuery = errors.New("no highlight query")

// QueryFS is the filesystem holding queries/<QueryPath>/highlights.scm.
var QueryFS fs.FS

// Language describes a grammar and where its highlight query lives.
type Language struct {
	Name           string
	TreeSitterLang *sitter.Language
	Extensions     []string
	// QueryPath is the directory name under queries/.
	QueryPath string

	once     sync.Once
	query    *sitter.Query
	queryErr error
}

// QuerySource loads the raw highlight query for this language.
func (l *Language) QuerySource() ([]byte, error) {
	if QueryFS == nil {
		return nil, fmt.Errorf("%s: query filesystem not set: %w", l.Name, ErrNoQuery)
	}
	if l.QueryPath == "" {
		return nil, fmt.Errorf("%s: %w", l.Name, ErrNoQuery)
	}

	var lastErr error
	for _, name := range []string{"highlight.scm", "highlights.scm"} {
		path := fmt.Sprintf("queries/%s/%s", l.QueryPath, name)
		src, err := fs.ReadFile(QueryFS, path)
		if err == nil {
			logger.DebugTagf("highlight", "loaded query %s for %s (%d bytes)", path, l.Name, len(src))
			return src, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%s: %w: %v", l.Name, ErrNoQuery, lastErr)
}

// Query returns the compiled highlight query, compiling it on first use.
func (l *Language) Query() (*sitter.Query, error) {
	l.once.Do(func() {
		src, err := l.QuerySource()
		if err != nil {
			l.queryErr = err
			return
		}
		q, err := sitter.NewQuery(src, l.TreeSitterLang)
		if err != nil {
			l.queryErr = fmt.Errorf("compile %s query: %w", l.Name, err)
			return
		}
		l.query = q
	})
	return l.query, l.queryErr
}
