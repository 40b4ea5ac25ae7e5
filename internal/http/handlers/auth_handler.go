package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "lofireads/internal/log"
	"lofireads/internal/services"
	"lofireads/internal/stores"
	"lofireads/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}
	_, err := h.Auth.Login(sid, email, c.FormValue("password"))
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password", "CSRFToken": c.Cookies("csrf_")})
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": "Please enter a valid email", "CSRFToken": c.Cookies("csrf_")})
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": "Please enter your name", "CSRFToken": c.Cookies("csrf_")})
	}
	pass := c.FormValue("password")
	if !validate.Password(pass) {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": "Password must be 8-64 characters with upper, lower, digit and symbol", "CSRFToken": c.Cookies("csrf_")})
	}
	_, err := h.Auth.Register(sid, email, pass, name)
	if err != nil {
		if errors.Is(err, stores.ErrEmailTaken) {
			applog.Security(c, "auth.register.dup", map[string]any{"email": email})
			return c.Status(fiber.StatusConflict).Render("register", fiber.Map{"Err": "Email already registered", "CSRFToken": c.Cookies("csrf_")})
		}
		applog.Error(c, "auth.register.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("register", fiber.Map{"Err": "Could not create account. Please try again.", "CSRFToken": c.Cookies("csrf_")})
	}
	applog.Audit(c, "auth.register.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
