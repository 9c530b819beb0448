// Package ratelimit provides a Redis-backed fixed-window limiter for the
// public booking endpoints.
package ratelimit

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rl"

// PerMinute limits each client IP to perMin requests per route per minute.
// A nil client disables limiting; Redis errors fail open so an outage never
// blocks bookings.
func PerMinute(rdb *redis.Client, perMin int) gin.HandlerFunc {
	if rdb == nil || perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		window := time.Now().Unix() / 60
		key := keyPrefix + ":" + c.ClientIP() + ":" + c.FullPath() + ":" + strconv.FormatInt(window, 10)

		pipe := rdb.TxPipeline()
		count := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("ratelimit: redis error for key=%s: %v", key, err)
			c.Next()
			return
		}

		n := count.Val()
		remaining := int64(perMin) - n
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(perMin))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if n > int64(perMin) {
			retry := 60 - time.Now().Unix()%60
			c.Header("Retry-After", strconv.FormatInt(retry, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too_many_requests",
				"retry_after": retry,
			})
			return
		}
		c.Next()
	}
}
