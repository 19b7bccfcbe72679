package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Throttle counts failed logins per key and locks the key out once the count
// reaches max. Counters expire window after the last failure. A nil
// *Throttle allows everything.
type Throttle struct {
	// mu makes the read-increment-write in Failure atomic.
	mu     sync.Mutex
	cache  *ristretto.Cache[string, int]
	max    int
	window time.Duration
}

func NewThrottle(maxAttempts int, window time.Duration) (*Throttle, error) {
	if maxAttempts <= 0 {
		return nil, nil
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, int]{
		NumCounters: 100000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
		// Each counter costs 1, so MaxCost is the number of tracked emails.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize login throttle: %w", err)
	}
	return &Throttle{cache: cache, max: maxAttempts, window: window}, nil
}

func (t *Throttle) Allowed(key string) bool {
	if t == nil {
		return true
	}
	n, ok := t.cache.Get(key)
	return !ok || n < t.max
}

func (t *Throttle) Failure(key string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.cache.Get(key)
	t.cache.SetWithTTL(key, n+1, 1, t.window)
	// Sets are buffered; make the new count visible to the next Allowed.
	t.cache.Wait()
}

func (t *Throttle) Reset(key string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache.Del(key)
	t.cache.Wait()
}

func (t *Throttle) Close() {
	if t == nil {
		return
	}
	t.cache.Close()
}
