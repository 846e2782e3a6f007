package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts any handler error to the JSON failure envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{"ok": false, "error": message})
}
