package cache

import (
	"context"
	"sync"
	"time"
)

const defaultCleanupInterval = time.Minute

type memoryEntry[T any] struct {
	value     *T
	expiresAt time.Time
}

// Memory is a process-local concurrent TTL map. Expired entries are dropped
// lazily on Get and swept by a background janitor.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
	done    chan struct{}
	once    sync.Once
}

// NewMemory creates a memory cache and starts its janitor.
func NewMemory[T any]() *Memory[T] {
	c := &Memory[T]{
		entries: make(map[string]memoryEntry[T]),
		done:    make(chan struct{}),
	}
	go c.janitor(defaultCleanupInterval)
	return c
}

func (c *Memory[T]) Get(_ context.Context, key string) (*T, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another Set may have refreshed it.
		if current, ok := c.entries[key]; ok && time.Now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}

	return entry.value, nil
}

func (c *Memory[T]) Set(_ context.Context, key string, value *T, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry[T]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Close stops the janitor.
func (c *Memory[T]) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *Memory[T]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
