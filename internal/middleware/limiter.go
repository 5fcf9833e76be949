package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers.
const (
	// Register / login (strict)
	LimitStrict = rate.Limit(2)
	BurstStrict = 5

	// Everything else
	LimitGeneral = rate.Limit(10)
	BurstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

// getVisitor retrieves or creates a rate limiter for the given key.
func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries from the visitors map to
// prevent unbounded growth.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimit rejects requests over the given rate with a 429. Buckets
// are keyed per authenticated user when available, falling back to the
// client IP, so one caller cannot exhaust another's quota.
func RateLimit(r rate.Limit, b int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var identity string
		if userID, ok := UserIDFrom(c); ok {
			identity = fmt.Sprintf("user:%d", userID)
		} else {
			identity = "ip:" + c.ClientIP()
		}

		// Separate buckets per tier so strict actions don't drain the
		// general quota.
		key := fmt.Sprintf("%s:%v:%d", identity, r, b)

		if !getVisitor(key, r, b).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": http.StatusText(http.StatusTooManyRequests),
			})
			return
		}

		c.Next()
	}
}
