// Package ratelimit provides per-client request limiting using token
// buckets. Buckets refill continuously, so a limit of N per window allows
// short bursts up to the configured burst capacity and then a steady
// N/window rate.
package ratelimit

import (
	"sync"
	"time"
)

// bucketIdleTTL is how long a bucket may go unused before the sweeper
// drops it.
const bucketIdleTTL = time.Hour

// TokenBucket is a single client+endpoint bucket.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastUsed   time.Time
}

func newTokenBucket(capacity int, refillRate float64) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity), // start full
		lastRefill: now,
		lastUsed:   now,
	}
}

// allow consumes a token if one is available.
func (tb *TokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.lastUsed = tb.refill()
	if tb.tokens < 1.0 {
		return false
	}
	tb.tokens--
	return true
}

// refill credits tokens for the time since the last refill and returns the
// refill instant. Caller holds the lock.
func (tb *TokenBucket) refill() time.Time {
	now := time.Now()
	tb.tokens = min(tb.capacity, tb.tokens+now.Sub(tb.lastRefill).Seconds()*tb.refillRate)
	tb.lastRefill = now
	return now
}

// getStatus reports the remaining whole tokens and when the bucket will be
// full again, without consuming anything.
func (tb *TokenBucket) getStatus() (remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	resetTime = tb.refill()
	if deficit := tb.capacity - tb.tokens; deficit > 0 {
		resetTime = resetTime.Add(time.Duration(deficit / tb.refillRate * float64(time.Second)))
	}
	return int(tb.tokens), resetTime
}

// idleSince reports whether the bucket has gone unused since the cutoff.
func (tb *TokenBucket) idleSince(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastUsed.Before(cutoff)
}

// Info describes the rate limit outcome for one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config controls limiter behavior.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter keeps a bucket per client+endpoint+method and answers whether
// each request may proceed.
type Limiter struct {
	mu       sync.RWMutex
	buckets  map[string]*TokenBucket
	config   *Config
	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a rate limiter. A nil config enables limiting with the
// package defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*TokenBucket),
		config:  config,
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.sweep(config.CleanupInterval)
	}
	return l
}

// Allow reports whether a request from the client may proceed against the
// endpoint, consuming a token when it may. The returned Info carries what
// the HTTP layer needs for its X-RateLimit headers.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	switch {
	case !l.config.Enabled, l.config.Whitelist[clientID]:
		return true, Info{Allowed: true}
	case l.config.Blacklist[clientID]:
		return false, Info{}
	}

	cfg := l.endpointConfig(endpoint, method)
	if cfg.Limit <= 0 {
		// Unlimited endpoint.
		return true, Info{Allowed: true}
	}

	bucket := l.bucketFor(clientID+":"+endpoint+":"+method, cfg)
	allowed := bucket.allow()
	remaining, resetTime := bucket.getStatus()

	info := Info{
		Allowed:   allowed,
		Limit:     cfg.Limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		info.RetryAfter = max(time.Until(resetTime), 0)
	}
	return allowed, info
}

// endpointConfig resolves which limit governs an endpoint. Endpoints
// without an explicit config share the limiter-wide default.
func (l *Limiter) endpointConfig(endpoint, method string) *EndpointConfig {
	if cfg := MatchEndpoint(endpoint, method, l.config.EndpointConfigs); cfg != nil {
		return cfg
	}
	return &EndpointConfig{
		Limit:  l.config.DefaultLimit,
		Window: l.config.DefaultWindow,
		Burst:  l.config.DefaultLimit,
	}
}

// bucketFor returns the bucket for a key, creating it on first use. When
// two requests race on creation, the first to register wins and the loser
// is discarded before any token is consumed from it.
func (l *Limiter) bucketFor(key string, cfg *EndpointConfig) *TokenBucket {
	l.mu.RLock()
	bucket := l.buckets[key]
	l.mu.RUnlock()
	if bucket != nil {
		return bucket
	}

	capacity := cfg.Burst
	if capacity <= 0 {
		capacity = cfg.Limit
	}
	fresh := newTokenBucket(capacity, float64(cfg.Limit)/cfg.Window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if bucket := l.buckets[key]; bucket != nil {
		return bucket
	}
	l.buckets[key] = fresh
	return fresh
}

// sweep periodically drops idle buckets so memory stays bounded across
// many distinct clients.
func (l *Limiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-bucketIdleTTL))
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, bucket := range l.buckets {
		if bucket.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the background sweeper. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
