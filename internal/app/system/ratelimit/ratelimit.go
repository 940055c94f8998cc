// Package ratelimit throttles the app's two unauthenticated surfaces:
// sign-in attempts and public member self-registration. Counting uses a
// fixed window per key; windows are kept in memory alongside the rest
// of the app state.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key in fixed windows. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit requests per key per duration.
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether a request under the given key may proceed, and
// counts it if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.windows[key]
	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Reset clears the window for a key, typically after a successful sign-in.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// cleanupLoop drops expired windows so idle keys do not accumulate.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.duration * 2)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.windows {
			if now.After(w.expiresAt) {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client IP, honoring X-Forwarded-For and
// X-Real-IP for proxied requests and falling back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); first != "" {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// SignInLimiter pairs an IP window with a per-identity window so
// neither a single machine nor a single targeted account can be
// hammered. The identity key is the email or phone the leader typed.
type SignInLimiter struct {
	ip       *Limiter
	identity *Limiter
}

// NewSignInLimiter uses 10 attempts per IP per minute and 5 attempts
// per identity per five minutes.
func NewSignInLimiter() *SignInLimiter {
	return &SignInLimiter{
		ip:       New(10, time.Minute),
		identity: New(5, 5*time.Minute),
	}
}

// Check reports whether this attempt may proceed; when blocked it
// returns a message suitable for the sign-in form.
func (sl *SignInLimiter) Check(r *http.Request, identity string) (bool, string) {
	if !sl.ip.Allow(ClientIP(r)) {
		return false, "Too many sign-in attempts. Please wait a minute before trying again."
	}
	if identity != "" {
		if !sl.identity.Allow(identityKey(identity)) {
			return false, "Too many attempts for this account. Please wait a few minutes."
		}
	}
	return true, ""
}

// ResetIdentity clears the identity window after a successful sign-in.
func (sl *SignInLimiter) ResetIdentity(identity string) {
	if identity != "" {
		sl.identity.Reset(identityKey(identity))
	}
}

func identityKey(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
