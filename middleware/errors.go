package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"store-service/model"
)

// ErrorHandler is the fiber.Config ErrorHandler. Known domain errors map to
// their status; anything else is logged and answered with a bare 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, message := classify(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %+v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		switch fe.Code {
		case fiber.StatusNotFound:
			return fe.Code, "Resource not found"
		case fiber.StatusInternalServerError:
			return fe.Code, "Internal server error"
		}
		return fe.Code, fe.Message
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrInvalidQuantity):
		return fiber.StatusBadRequest, "Invalid request"
	case errors.Is(err, model.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, model.ErrInvalidSession):
		return fiber.StatusUnauthorized, "Login required"
	case errors.Is(err, model.ErrProductNotFound), errors.Is(err, model.ErrUserNotFound):
		return fiber.StatusNotFound, "Resource not found"
	case errors.Is(err, model.ErrUserExists):
		return fiber.StatusConflict, "Username or email already exists"
	case errors.Is(err, model.ErrInsufficientStock):
		return fiber.StatusConflict, "Insufficient stock"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
