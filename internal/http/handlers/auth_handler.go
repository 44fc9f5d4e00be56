package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"easyshop/internal/domain"
	"easyshop/internal/log"
	"easyshop/internal/services"
	"easyshop/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"` // seconds
	User      *domain.User `json:"user"`
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	username, ok := validate.Username(in.Username)
	if !ok || in.Password == "" {
		log.Security(c, "auth.login.fail", map[string]any{"username": in.Username, "reason": "bad_format"})
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
	}

	tok, u, err := h.Auth.Login(c.UserContext(), username, in.Password)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"username": username})
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
	}
	if err != nil {
		return storeFailure(c, "auth.login.error", err)
	}

	c.Locals("user_id", u.ID)
	log.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.JSON(loginResponse{Token: tok, ExpiresIn: int64(h.Auth.Tokens.TTL().Seconds()), User: u})
}

// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in registerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	username, ok := validate.Username(in.Username)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "username"})
		return fiber.NewError(fiber.StatusBadRequest, "Username must be 3-50 letters, digits, dots, dashes or underscores")
	}
	if !validate.Password(in.Password) {
		log.Security(c, "validation.fail", map[string]any{"field": "password"})
		return fiber.NewError(fiber.StatusBadRequest, "Password needs 8-64 characters with upper and lower case, a digit and a symbol")
	}

	u, err := h.Auth.Register(c.UserContext(), username, in.Password, in.ConfirmPassword)
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		return fiber.NewError(fiber.StatusBadRequest, "Passwords do not match")
	case errors.Is(err, services.ErrUsernameTaken):
		log.Security(c, "auth.register.fail", map[string]any{"username": username, "reason": "taken"})
		return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
	case err != nil:
		return storeFailure(c, "auth.register.error", err)
	}

	log.Audit(c, "auth.register", map[string]any{"username": username, "user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}
