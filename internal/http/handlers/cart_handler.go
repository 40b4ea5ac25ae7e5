package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "lofireads/internal/log"
	"lofireads/internal/services"
	"lofireads/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	return render(c, "cart", fiber.Map{"Cart": h.Cart.View(sid)})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing bookId")
	}
	if err := h.Cart.Add(sid, bookID); err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"book": bookID})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This book is no longer available"})
	}
	applog.Audit(c, "cart.add", map[string]any{"book": bookID})
	back := c.Get("Referer")
	if back == "" {
		back = "/cart"
	}
	return c.Redirect(back)
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing bookId")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("bad qty")
	}
	h.Cart.SetQuantity(sid, bookID, qty)
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing bookId")
	}
	h.Cart.Remove(sid, bookID)
	applog.Audit(c, "cart.remove", map[string]any{"book": bookID})
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	h.Cart.Clear(sid)
	applog.Audit(c, "cart.clear", nil)
	return c.Redirect("/cart")
}
