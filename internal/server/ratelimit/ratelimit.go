// Package ratelimit provides per-client token bucket rate limiting for the
// card rendering API. Rendering is the expensive path, so it carries its
// own strict rule; everything else shares the default bucket.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// bucket is one client's token bucket. Tokens refill continuously at
// rate tokens/second up to capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	rate       float64
	tokens     float64
	lastRefill time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		rate:       rate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// take refills and consumes one token, reporting success, the remaining
// whole tokens and when the bucket is full again.
func (b *bucket) take() (allowed bool, remaining int, resetAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.rate)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}
	remaining = int(b.tokens)
	resetAt = now
	if b.tokens < b.capacity {
		resetAt = now.Add(time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second)))
	}
	return allowed, remaining, resetAt
}

// Info is the rate limit state attached to a response.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Rule limits one path prefix and method combination.
type Rule struct {
	PathPrefix string
	Method     string
	Limit      int
	Window     time.Duration
	Burst      int // defaults to Limit when zero
}

// Limiter applies rules per client, keeping one bucket per
// client/prefix/method key.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	seen    map[string]time.Time
	config  *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		buckets: make(map[string]*bucket),
		seen:    make(map[string]time.Time),
		config:  config,
	}
	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// Allow checks one request against the rules.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	rule := l.match(path, method)
	if rule == nil || rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + rule.PathPrefix + ":" + method
	b := l.getBucket(key, rule)

	l.mu.Lock()
	l.seen[key] = time.Now()
	l.mu.Unlock()

	allowed, remaining, resetAt := b.take()
	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: resetAt,
	}
	if !allowed {
		if wait := time.Until(resetAt); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return allowed, info
}

// match finds the first rule whose prefix and method cover the request.
// Health checks are never limited.
func (l *Limiter) match(path, method string) *Rule {
	if path == "/health" {
		return nil
	}
	for i := range l.config.Rules {
		rule := &l.config.Rules[i]
		if rule.Method != method {
			continue
		}
		if path == rule.PathPrefix || strings.HasPrefix(path, strings.TrimSuffix(rule.PathPrefix, "/")+"/") {
			return rule
		}
	}
	return &Rule{PathPrefix: "", Method: method, Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
}

func (l *Limiter) getBucket(key string, rule *Rule) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	created := newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	l.buckets[key] = created
	return created
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.dropIdle(time.Hour)
		case <-l.cleanupStop:
			return
		}
	}
}

// dropIdle removes buckets unused for longer than maxIdle.
func (l *Limiter) dropIdle(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.seen {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.seen, key)
		}
	}
}

// Stop halts the cleanup loop.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
