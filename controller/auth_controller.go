package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"store-service/middleware"
	"store-service/model"
	"store-service/service"
)

type AuthController struct {
	users         *service.UserService
	sessions      *service.SessionManager
	secureCookies bool
}

func NewAuthController(users *service.UserService, sessions *service.SessionManager, secureCookies bool) *AuthController {
	return &AuthController{users: users, sessions: sessions, secureCookies: secureCookies}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var body RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payload"})
	}

	if _, err := ac.users.Register(c.UserContext(), body.Username, body.Password, body.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var body LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payload"})
	}

	user, err := ac.users.Authenticate(c.UserContext(), body.Username, body.Password)
	if errors.Is(err, model.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}
	if err != nil {
		return err
	}

	token, session, err := ac.sessions.Issue(user.ID)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   ac.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged in successfully"})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if s := middleware.CurrentSession(c); s != nil {
		if err := ac.sessions.Revoke(c.UserContext(), s); err != nil {
			return err
		}
	}

	c.ClearCookie(middleware.SessionCookie)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
