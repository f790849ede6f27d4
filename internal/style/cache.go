package style

import "sync"

// Cache interns attribute sets so that structurally equal sets share one
// instance. Entries are never evicted; a document only ever sees a small
// number of distinct style combinations.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Attrs
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Attrs)}
}

// Intern returns the canonical instance equal to a. The first set seen for a
// value becomes canonical and is frozen. nil and empty sets map to Empty.
func (c *Cache) Intern(a *Attrs) *Attrs {
	if a.IsEmpty() {
		return Empty
	}
	if c == nil {
		return a
	}
	key := a.CanonicalForm()

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	if !a.frozen {
		a = a.Clone()
		a.frozen = true
	}
	c.entries[key] = a
	return a
}

// Len is the number of distinct sets held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
