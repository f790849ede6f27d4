package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/richdoc/internal/logger"
)

var registry struct {
	sync.RWMutex
	languages     []*Language
	extToLanguage map[string]*Language
	byName        map[string]*Language
}

// Register adds a language, mapping each of its extensions to it.
// A later registration for the same extension wins.
func Register(l *Language) {
	registry.Lock()
	defer registry.Unlock()

	if registry.extToLanguage == nil {
		registry.extToLanguage = make(map[string]*Language)
		registry.byName = make(map[string]*Language)
	}

	registry.languages = append(registry.languages, l)
	registry.byName[strings.ToLower(l.Name)] = l

	for _, ext := range l.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, l.Name)
		}
		registry.extToLanguage[lowerExt] = l
	}

	logger.DebugTagf("highlight", "registered language %s with extensions %v", l.Name, l.Extensions)
}

// GetForFile returns the language for a file path by extension, or nil.
func GetForFile(filePath string) *Language {
	registry.RLock()
	defer registry.RUnlock()

	return registry.extToLanguage[strings.ToLower(filepath.Ext(filePath))]
}

// GetByName looks a language up case-insensitively.
func GetByName(name string) *Language {
	registry.RLock()
	defer registry.RUnlock()

	return registry.byName[strings.ToLower(name)]
}

// GetAll returns all registered languages in registration order.
func GetAll() []*Language {
	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
