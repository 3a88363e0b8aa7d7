package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit 按客户端 IP 的令牌桶限流。
// 限流器表定期整体重建，避免一次性流量把表撑大。
func RateLimit(qps float64, burst int) gin.HandlerFunc {
	if qps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
		lastGC   = time.Now()
	)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		if time.Since(lastGC) > 10*time.Minute {
			limiters = make(map[string]*rate.Limiter)
			lastGC = time.Now()
		}
		lim, ok := limiters[ip]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(qps), burst)
			limiters[ip] = lim
		}
		mu.Unlock()

		if !lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
