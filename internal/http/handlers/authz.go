package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"easyshop/internal/auth"
	"easyshop/internal/domain"
	applog "easyshop/internal/log"
	"easyshop/internal/services"
)

const principalKey = "principal"

// Authenticate turns a bearer token into a principal in Locals. Requests
// without a usable token continue as anonymous.
func Authenticate(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		if h == "" {
			return c.Next()
		}
		tok, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(tok) == "" {
			applog.Security(c, "auth.token.invalid", map[string]any{"reason": "scheme"})
			return c.Next()
		}
		p, err := svc.Principal(strings.TrimSpace(tok))
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"reason": err.Error()})
			return c.Next()
		}
		c.Locals(principalKey, p)
		c.Locals("user_id", p.UserID)
		return c.Next()
	}
}

// CurrentPrincipal returns the zero Principal for anonymous requests.
func CurrentPrincipal(c *fiber.Ctx) domain.Principal {
	p, _ := c.Locals(principalKey).(domain.Principal)
	return p
}

// RequireRole rejects callers without role with 403, before the handler
// reads the body or touches a store.
func RequireRole(role string) fiber.Handler {
	action := "access.denied"
	if role == domain.RoleAdmin {
		action = "access.denied.admin"
	}
	return func(c *fiber.Ctx) error {
		p := CurrentPrincipal(c)
		if !auth.HasRole(p, role) {
			applog.Security(c, action, map[string]any{"role": p.Role, "required": role})
			return fiber.NewError(fiber.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}
