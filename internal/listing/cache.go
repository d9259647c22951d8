package listing

import "sync"

// Cache holds the entry currently served for each key.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*Entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]*Entry)}
}

// Get returns the cached entry for key.
func (c *Cache) Get(key Key) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Set replaces the entry for key.
func (c *Cache) Set(key Key, e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Delete drops the entry for key.
func (c *Cache) Delete(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of cached keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// keyLocks hands out one mutex per key. Keys are few (one per market and
// location) so locks are never released.
type keyLocks struct {
	mu    sync.Mutex
	locks map[Key]*sync.Mutex
}

func (l *keyLocks) lock(key Key) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[Key]*sync.Mutex)
	}
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
