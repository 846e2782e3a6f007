package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FieldError is one field-level rule violation as returned to clients.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Report json names, not Go field names.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return val
}

// Struct validates s and converts any violations to FieldErrors.
func Struct(s any) []FieldError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// Reply writes the standard 400 validation envelope.
func Reply(c *fiber.Ctx, fields []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"ok":     false,
		"error":  "validation failed",
		"fields": fields,
	})
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
