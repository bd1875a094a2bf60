package middleware

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"waste_negotiation/pkg"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ClientLimiter applies a token bucket per client key and periodically evicts
// idle entries.
type ClientLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu    sync.Mutex
	byKey map[string]*clientEntry
	hits  uint64
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter returns nil (no limiting) when rps or burst is not positive.
func NewClientLimiter(rps float64, burst int, idleTTL time.Duration) *ClientLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &ClientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		byKey:   make(map[string]*clientEntry),
	}
}

func (l *ClientLimiter) Allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byKey[key]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = e
	}
	e.lastSeen = now
	allowed := e.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%512 == 0 {
		cutoff := now.Add(-l.idleTTL)
		for k, v := range l.byKey {
			if v.lastSeen.Before(cutoff) {
				delete(l.byKey, k)
			}
		}
	}
	return allowed
}

// RateLimit rejects requests over the client's budget with 429.
func RateLimit(l *ClientLimiter) gin.HandlerFunc {
	tooMany := pkg.NewDomainErrorSimple("RATE_LIMITED", "Too many requests, slow down", http.StatusTooManyRequests)
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP(), time.Now()) {
			log.Printf("[http][ratelimit] rejected client_ip=%s path=%s", c.ClientIP(), c.FullPath())
			c.AbortWithStatusJSON(tooMany.HTTPStatus, tooMany.ToHTTPError())
			return
		}
		c.Next()
	}
}
