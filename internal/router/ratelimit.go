package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/arjunsachdeva/lifetrack-backend/internal/auth"
)

// Requests allowed per minute on the two throttled surfaces.
const (
	authRequestsPerMinute  = 10
	writeRequestsPerMinute = 60
)

func limitReached(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"ok": false, "error": "rate limit exceeded"})
}

// RateLimitAuth throttles signup and login per client IP.
func RateLimitAuth() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          authRequestsPerMinute,
		Expiration:   time.Minute,
		LimitReached: limitReached,
	})
}

// RateLimitWrite throttles mutating routes per authenticated user, falling
// back to the client IP when the request never cleared auth.
func RateLimitWrite() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        writeRequestsPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if uid, err := auth.UserID(c); err == nil {
				return uid
			}
			return c.IP()
		},
		LimitReached: limitReached,
	})
}
