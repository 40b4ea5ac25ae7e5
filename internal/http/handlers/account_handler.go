package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lofireads/internal/domain"
	applog "lofireads/internal/log"
	"lofireads/internal/stores"
	"lofireads/internal/validate"
)

// AccountHandler routes run behind RequireUser.
type AccountHandler struct {
	Users   *stores.UserStore
	Orders  *stores.OrderStore
	Reviews *stores.ReviewStore
}

func (h *AccountHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	profile, err := h.Users.ByID(u.ID)
	if err != nil {
		applog.Error(c, "account.load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your account"})
	}
	return render(c, "account", fiber.Map{
		"Profile": profile,
		"Orders":  h.Orders.ListForUser(u.ID),
		"Reviews": h.Reviews.ListForUser(u.ID),
	})
}

func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	upd := stores.ProfileUpdate{}
	if name, ok := validate.Name(c.FormValue("name")); ok {
		upd.Name = &name
	}
	if phone := strings.TrimSpace(c.FormValue("phone")); phone != "" {
		upd.Phone = &phone
	}
	prefs := domain.Preferences{
		Newsletter:         c.FormValue("newsletter") == "on",
		EmailNotifications: c.FormValue("notifications") == "on",
		FavoriteGenres:     []string{},
	}
	if g := strings.TrimSpace(c.FormValue("favoriteGenres")); g != "" {
		prefs.FavoriteGenres = strings.Split(g, ",")
	}
	upd.Preferences = &prefs

	if _, err := h.Users.UpdateProfile(u.ID, upd); err != nil {
		applog.Error(c, "account.update.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not update profile")
	}
	applog.Audit(c, "account.update", nil)
	return c.Redirect("/account")
}

func (h *AccountHandler) UpdatePassword(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	next := c.FormValue("newPassword")
	if !validate.Password(next) {
		return c.Status(fiber.StatusBadRequest).SendString("Password must be 8-64 characters with upper, lower, digit and symbol")
	}
	if err := h.Users.UpdatePassword(u.ID, c.FormValue("currentPassword"), next); err != nil {
		applog.Security(c, "account.password.fail", nil)
		return c.Status(fiber.StatusBadRequest).SendString("Current password is incorrect")
	}
	applog.Audit(c, "account.password.change", nil)
	return c.Redirect("/account")
}
