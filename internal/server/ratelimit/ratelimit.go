// Package ratelimit provides per-client rate limiting using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket. It holds at most capacity tokens and refills at
// rate tokens per second.
type bucket struct {
	capacity float64
	rate     float64
	tokens   float64
	last     time.Time
	mu       sync.Mutex
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity), // start full
		last:     now,
	}
}

// take refills the bucket up to now and consumes one token if available.
// It returns whether a token was consumed, the whole tokens left, and when
// the bucket will be full again.
func (b *bucket) take(now time.Time) (bool, int, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed.Seconds()*b.rate)
		b.last = now
	}

	ok := b.tokens >= 1
	if ok {
		b.tokens--
	}

	full := now
	if missing := b.capacity - b.tokens; missing > 0 && b.rate > 0 {
		full = now.Add(time.Duration(missing / b.rate * float64(time.Second)))
	}
	return ok, int(b.tokens), full
}

// Info describes the rate limit state after one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type entry struct {
	bucket *bucket
	seen   time.Time
}

// Limiter tracks one bucket per client, route and method.
type Limiter struct {
	config Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*entry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter and, when enabled, starts a goroutine that
// drops idle buckets every CleanupInterval. Call Stop to end it.
func NewLimiter(config Config) *Limiter {
	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow records one request from clientID and reports whether it may proceed.
func (l *Limiter) Allow(clientID, path, method string) Info {
	unlimited := Info{Allowed: true}
	if !l.config.Enabled || l.config.Allowlist[clientID] {
		return unlimited
	}
	if l.config.Denylist[clientID] {
		return Info{Allowed: false}
	}

	rule := l.config.Match(path, method)
	if rule.Limit <= 0 {
		return unlimited
	}

	now := l.now()
	key := clientID + " " + method + " " + rule.Path
	b := l.bucketFor(key, rule, now)

	ok, remaining, full := b.take(now)
	info := Info{
		Allowed:   ok,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: full,
	}
	if !ok {
		// one token arrives after 1/rate seconds
		info.RetryAfter = time.Duration(float64(time.Second) / b.rate)
	}
	return info
}

func (l *Limiter) bucketFor(key string, rule Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		window := rule.Window
		if window <= 0 {
			window = time.Minute
		}
		e = &entry{bucket: newBucket(burst, float64(rule.Limit)/window.Seconds(), now)}
		l.buckets[key] = e
	}
	e.seen = now
	return e.bucket
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep(l.now().Add(-l.config.IdleTTL))
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets not used since cutoff.
func (l *Limiter) sweep(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	dropped := 0
	for key, e := range l.buckets {
		if e.seen.Before(cutoff) {
			delete(l.buckets, key)
			dropped++
		}
	}
	return dropped
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
