package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitrate/fitrate/internal/sharecard"
)

// cardCache holds rendered cards in memory until their share token
// expires. Cards are ephemeral by design; nothing is persisted.
type cardCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]cacheEntry
	stop    chan struct{}
	once    sync.Once
}

type cacheEntry struct {
	card      *sharecard.Card
	expiresAt time.Time
}

func newCardCache(ttl time.Duration) *cardCache {
	c := &cardCache{
		ttl:     ttl,
		entries: make(map[uuid.UUID]cacheEntry),
		stop:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Put stores a card and returns its expiry time.
func (c *cardCache) Put(id uuid.UUID, card *sharecard.Card) time.Time {
	expiresAt := time.Now().Add(c.ttl)
	c.mu.Lock()
	c.entries[id] = cacheEntry{card: card, expiresAt: expiresAt}
	c.mu.Unlock()
	return expiresAt
}

// Get returns a cached card if it has not expired.
func (c *cardCache) Get(id uuid.UUID) (*sharecard.Card, bool) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.card, true
}

// janitor evicts expired cards periodically.
func (c *cardCache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for id, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, id)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Stop halts the janitor goroutine.
func (c *cardCache) Stop() {
	c.once.Do(func() { close(c.stop) })
}
