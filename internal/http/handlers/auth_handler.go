package handlers

import (
	applog "pawmart/internal/log"
	"pawmart/internal/services"
	"pawmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid payload")
	}
	email, okEmail := validate.Email(in.Email)
	if !okEmail || in.Password == "" {
		return fail(c, fiber.StatusBadRequest, "email and password are required")
	}

	sid := ensureSID(c)
	u, err := h.Auth.Login(sid, email, in.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	applog.Audit(c, "auth.login", map[string]any{"user_id": u.ID})
	return ok(c, fiber.StatusOK, fiber.Map{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		_ = h.Auth.Logout(sid)
	}
	return okMessage(c, "logged out")
}
