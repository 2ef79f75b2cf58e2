// Package ratelimiter implements a per-key token bucket.
package ratelimiter

import (
	"sync"
	"time"
)

// bucket is the limiter state for a single key.
type bucket struct {
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
	key        string
	parent     *KeyedLimiter
}

// KeyedLimiter rate-limits independently per key (IP, email, account).
// Idle buckets expire to keep the map bounded.
type KeyedLimiter struct {
	buckets  map[string]*bucket
	mu       sync.RWMutex
	rate     float64 // tokens per second
	capacity float64
	idleTTL  time.Duration
}

func New(rate, capacity float64, idleTTL time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		idleTTL:  idleTTL,
	}
}

func (kl *KeyedLimiter) cleanup(key string) {
	kl.mu.Lock()
	delete(kl.buckets, key)
	kl.mu.Unlock()
}

func (b *bucket) resetTimer() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.parent.idleTTL, func() {
		b.parent.cleanup(b.key)
	})
}

func (kl *KeyedLimiter) getBucket(key string) *bucket {
	kl.mu.RLock()
	b, exists := kl.buckets[key]
	kl.mu.RUnlock()
	if exists {
		b.resetTimer()
		return b
	}

	kl.mu.Lock()
	defer kl.mu.Unlock()

	// Double-check after acquiring write lock
	if b, exists = kl.buckets[key]; exists {
		b.resetTimer()
		return b
	}

	b = &bucket{
		tokens:     kl.capacity,
		lastRefill: time.Now(),
		key:        key,
		parent:     kl,
	}
	kl.buckets[key] = b
	b.resetTimer()
	return b
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()

	b.tokens += elapsed * b.parent.rate
	if b.tokens > b.parent.capacity {
		b.tokens = b.parent.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Allow reports whether a request under the given key may proceed.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.getBucket(key).allow()
}

// Stop cancels all expiry timers.
func (kl *KeyedLimiter) Stop() {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	for _, b := range kl.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}
