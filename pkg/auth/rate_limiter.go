package auth

import (
	"sync"
	"time"
)

// IPRateLimiter applies a token-bucket limit per client IP. Buckets refill
// continuously and idle entries are swept so the map stays bounded.
type IPRateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	maxTokens  int
	refillRate time.Duration
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewIPRateLimiter allows maxPerMinute requests per IP per minute
func NewIPRateLimiter(maxPerMinute int) *IPRateLimiter {
	l := &IPRateLimiter{
		buckets:    make(map[string]*bucket),
		maxTokens:  maxPerMinute,
		refillRate: time.Minute / time.Duration(maxPerMinute),
	}
	go l.sweep()
	return l
}

// Allow reports whether a request from ip may proceed
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	now := time.Now()
	if !ok {
		l.buckets[ip] = &bucket{tokens: l.maxTokens - 1, lastRefill: now}
		return true
	}

	refill := int(now.Sub(b.lastRefill) / l.refillRate)
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.maxTokens {
			b.tokens = l.maxTokens
		}
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets idle long enough to be fully refilled
func (l *IPRateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-5 * time.Minute)
		l.mu.Lock()
		for ip, b := range l.buckets {
			if b.lastRefill.Before(cutoff) {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}
