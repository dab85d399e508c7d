package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"store-service/model"
	"store-service/service"
)

const (
	SessionCookie = "session"

	localUserID  = "user_id"
	localSession = "session"
)

type SessionParser interface {
	Parse(ctx context.Context, token string) (*service.Session, error)
}

// SessionRequired rejects requests without a valid session cookie and
// exposes the caller through UserID and CurrentSession.
func SessionRequired(sessions SessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Login required"})
		}

		s, err := sessions.Parse(c.UserContext(), token)
		if errors.Is(err, model.ErrInvalidSession) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Login required"})
		}
		if err != nil {
			return err
		}

		c.Locals(localUserID, s.UserID)
		c.Locals(localSession, s)
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}

func CurrentSession(c *fiber.Ctx) *service.Session {
	s, _ := c.Locals(localSession).(*service.Session)
	return s
}
