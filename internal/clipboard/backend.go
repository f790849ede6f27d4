package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/richdoc/internal/logger"
)

// Backend stores clipboard text.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

func (System) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (System) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// NewBackend returns the system clipboard when useSystem is set and the
// platform has one, and a memory clipboard otherwise.
func NewBackend(useSystem bool) Backend {
	if useSystem && !clipboard.Unsupported {
		return System{}
	}
	if useSystem {
		logger.Warnf("System clipboard unsupported on this platform, using memory clipboard")
	}
	return &Memory{}
}
