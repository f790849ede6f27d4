// Package find searches a document's paragraphs with regular expressions
// and rewrites the matches.
package find

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/bethropolis/richdoc/internal/logger"
	"github.com/bethropolis/richdoc/internal/types"
	"github.com/bethropolis/richdoc/internal/utils"
)

var (
	ErrEmptyPattern  = errors.New("search pattern cannot be empty")
	ErrBadSubstitute = errors.New("invalid format: use /pattern/replacement/[g]")
)

// Document is what searching and replacing need. Matches never span
// paragraphs.
type Document interface {
	Size() int
	PlainText(index int) string
	ReplaceText(start, end types.TextPos, text string) (types.TextPos, error)
}

// Match is one occurrence, in rune offsets.
type Match struct {
	Start, End types.TextPos
}

// Manager keeps the last search and its matches.
type Manager struct {
	doc Document

	mutex   sync.RWMutex
	term    string
	re      *regexp.Regexp
	matches []Match
}

// NewManager creates a find manager over doc.
func NewManager(doc Document) *Manager {
	return &Manager{doc: doc}
}

// Search compiles term and records every match in the document. An empty
// term clears the search.
func (m *Manager) Search(term string) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.term, m.re, m.matches = term, nil, nil
	if term == "" {
		return 0, nil
	}
	re, err := regexp.Compile(term)
	if err != nil {
		logger.Warnf("Find: invalid regex '%s': %v", term, err)
		return 0, fmt.Errorf("invalid search pattern: %w", err)
	}
	m.re = re
	m.matches = collect(m.doc, re)
	logger.Debugf("Find: %d matches for '%s'", len(m.matches), term)
	return len(m.matches), nil
}

func collect(doc Document, re *regexp.Regexp) []Match {
	var out []Match
	for i := 0; i < doc.Size(); i++ {
		line := doc.PlainText(i)
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[0] == loc[1] {
				continue
			}
			out = append(out, Match{
				Start: types.NewTextPos(i, utils.ByteOffsetToRuneIndex(line, loc[0])),
				End:   types.NewTextPos(i, utils.ByteOffsetToRuneIndex(line, loc[1])),
			})
		}
	}
	return out
}

// Matches returns a copy of the last search's matches.
func (m *Manager) Matches() []Match {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	out := make([]Match, len(m.matches))
	copy(out, m.matches)
	return out
}

// FindNext returns the first match starting after from (forward) or the last
// one starting before it (backward).
func (m *Manager) FindNext(from types.TextPos, forward bool) (Match, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if forward {
		for _, mt := range m.matches {
			if mt.Start.After(from) {
				return mt, true
			}
		}
		return Match{}, false
	}
	for i := len(m.matches) - 1; i >= 0; i-- {
		if m.matches[i].Start.Before(from) {
			return m.matches[i], true
		}
	}
	return Match{}, false
}

// ParseSubstituteCommand parses "/pattern/replacement/[g]".
func ParseSubstituteCommand(cmdStr string) (pattern, replacement string, global bool, err error) {
	parts := strings.SplitN(cmdStr, "/", 4)
	if len(parts) < 3 || parts[0] != "" {
		err = ErrBadSubstitute
		return
	}
	pattern, replacement = parts[1], parts[2]
	if pattern == "" {
		err = ErrEmptyPattern
		return
	}
	if len(parts) > 3 && strings.Contains(parts[3], "g") {
		global = true
	}
	return
}

// Replace rewrites matches of pattern. Without global only the first match
// of each paragraph is replaced. The replacement may use $1-style
// submatch references. Replaced text takes the style of the character
// before it. It returns the number of replacements.
func (m *Manager) Replace(pattern, replacement string, global bool) (int, error) {
	if pattern == "" {
		return 0, ErrEmptyPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid search pattern: %w", err)
	}

	count := 0
	for i := 0; i < m.doc.Size(); i++ {
		line := m.doc.PlainText(i)
		locs := re.FindAllStringSubmatchIndex(line, -1)
		if !global && len(locs) > 1 {
			locs = locs[:1]
		}
		// Back to front so earlier offsets stay valid.
		for j := len(locs) - 1; j >= 0; j-- {
			loc := locs[j]
			if loc[0] == loc[1] {
				continue
			}
			text := string(re.ExpandString(nil, replacement, line, loc))
			start := types.NewTextPos(i, utils.ByteOffsetToRuneIndex(line, loc[0]))
			end := types.NewTextPos(i, utils.ByteOffsetToRuneIndex(line, loc[1]))
			if _, err := m.doc.ReplaceText(start, end, text); err != nil {
				return count, fmt.Errorf("replace at %v: %w", start, err)
			}
			count++
		}
	}

	logger.Debugf("Find: replaced %d occurrences of '%s'", count, pattern)
	if m.term != "" {
		_, _ = m.Search(m.term)
	}
	return count, nil
}
