package router

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunsachdeva/lifetrack-backend/internal/auth"
)

func TestRateLimitAuth(t *testing.T) {
	app := fiber.New()
	app.Post("/login", RateLimitAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	for i := 0; i < authRequestsPerMinute; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	var body struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.OK)
	assert.Equal(t, "rate limit exceeded", body.Error)
}

func TestRateLimitWriteKeysByUser(t *testing.T) {
	secret := []byte("test-secret")

	app := fiber.New()
	app.Post("/write", auth.Middleware(secret), RateLimitWrite(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	tokenA, err := auth.GenerateToken(secret, uuid.NewString(), time.Hour)
	require.NoError(t, err)
	tokenB, err := auth.GenerateToken(secret, uuid.NewString(), time.Hour)
	require.NoError(t, err)

	send := func(token string) int {
		req := httptest.NewRequest("POST", "/write", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	for i := 0; i < writeRequestsPerMinute; i++ {
		require.Equal(t, fiber.StatusOK, send(tokenA))
	}
	assert.Equal(t, fiber.StatusTooManyRequests, send(tokenA))

	// One user's burst must not throttle another.
	assert.Equal(t, fiber.StatusOK, send(tokenB))
}
