package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryRunClaimer grants run keys within a single process. It is used
// when Redis is disabled.
type InMemoryRunClaimer struct {
	mu        sync.Mutex
	claims    map[string]time.Time // key -> expiry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryRunClaimer creates a claimer and starts its cleanup goroutine
func NewInMemoryRunClaimer() *InMemoryRunClaimer {
	c := &InMemoryRunClaimer{
		claims:   make(map[string]time.Time),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.cleanupLoop(time.Hour)
	return c
}

// Claim returns true for the first caller of key until ttl elapses
func (c *InMemoryRunClaimer) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if expiresAt, ok := c.claims[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	c.claims[key] = now.Add(ttl)
	return true, nil
}

// Release drops a claim so the run can be retried
func (c *InMemoryRunClaimer) Release(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.claims, key)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryRunClaimer) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Size returns the number of claims held, expired ones included
func (c *InMemoryRunClaimer) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.claims)
}

func (c *InMemoryRunClaimer) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryRunClaimer) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, expiresAt := range c.claims {
		if !now.Before(expiresAt) {
			delete(c.claims, key)
		}
	}
}
