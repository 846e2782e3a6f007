package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

const localsUserID = "user_id"

// GenerateToken mints an HS256 token with the user id as subject claim.
func GenerateToken(secret []byte, userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Middleware authenticates a request from the token cookie or the
// Authorization bearer header (cookie wins) and stores the caller's user id
// in request locals.
func Middleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Cookies(CookieName))
		if raw == "" {
			header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				raw = strings.TrimSpace(parts[1])
			}
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		rawUID, ok := claims["user_id"].(string)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		if _, err := uuid.Parse(rawUID); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(localsUserID, rawUID)
		return c.Next()
	}
}

// UserID extracts the authenticated user id placed by Middleware.
func UserID(c *fiber.Ctx) (string, error) {
	if uid, ok := c.Locals(localsUserID).(string); ok && strings.TrimSpace(uid) != "" {
		return uid, nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
}
