package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lofireads/internal/domain"
	applog "lofireads/internal/log"
	"lofireads/internal/services"
	"lofireads/internal/validate"
)

// WishlistHandler routes run behind RequireUser, so a *domain.User is
// always present in Locals.
type WishlistHandler struct {
	Wish *services.WishlistService
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	return render(c, "wishlist", fiber.Map{"Entries": h.Wish.List(u.ID)})
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing bookId")
	}
	if err := h.Wish.Save(u.ID, bookID); err != nil {
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"book": bookID})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This book is no longer available"})
	}
	applog.Audit(c, "wishlist.save", map[string]any{"book": bookID})
	back := c.Get("Referer")
	if back == "" {
		back = "/wishlist"
	}
	return c.Redirect(back)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing bookId")
	}
	h.Wish.Unsave(u.ID, bookID)
	applog.Audit(c, "wishlist.unsave", map[string]any{"book": bookID})
	return c.Redirect("/wishlist")
}

func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	h.Wish.Clear(u.ID)
	applog.Audit(c, "wishlist.clear", nil)
	return c.Redirect("/wishlist")
}

// MoveToCart drains the wishlist into the session cart.
func (h *WishlistHandler) MoveToCart(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	sid := ensureSID(c)
	books := h.Wish.MoveAllToCart(u.ID, sid)
	applog.Audit(c, "wishlist.move_to_cart", map[string]any{"count": len(books)})
	return c.Redirect("/cart")
}
