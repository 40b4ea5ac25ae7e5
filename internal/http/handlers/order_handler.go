package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lofireads/internal/domain"
	applog "lofireads/internal/log"
	"lofireads/internal/services"
	"lofireads/internal/stores"
	"lofireads/internal/validate"
)

// OrderHandler routes run behind RequireUser.
type OrderHandler struct {
	Cart   *services.CartService
	Order  *services.OrderService
	Orders *stores.OrderStore
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	sid := ensureSID(c)

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("name must be 1-40 characters")
	}
	zip, ok := validate.ZIP(c.FormValue("zip"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "zip"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid ZIP")
	}
	shipping := domain.Address{
		ID:      uuid.NewString(),
		Name:    name,
		Street:  strings.TrimSpace(c.FormValue("street")),
		City:    strings.TrimSpace(c.FormValue("city")),
		State:   strings.TrimSpace(c.FormValue("state")),
		ZipCode: zip,
		Country: strings.TrimSpace(c.FormValue("country")),
	}
	if shipping.Country == "" {
		shipping.Country = "US"
	}

	payType := strings.ToLower(strings.TrimSpace(c.FormValue("payment")))
	if payType != "card" && payType != "paypal" {
		payType = "test"
	}
	payment := domain.PaymentMethod{Type: payType}

	o, err := h.Order.Checkout(sid, u.ID, shipping, nil, payment)
	if err != nil {
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Redirect("/cart")
		}
		applog.Error(c, "order.place.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).SendString("Could not place order. Please try again.")
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.Total})
	return c.Redirect("/order/" + o.ID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	oid := c.Params("id")
	o, err := h.Orders.GetByID(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	// Owner or admin only; anyone else sees the same not-found surface.
	if u == nil || (o.UserID != u.ID && !u.IsAdmin()) {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "order", fiber.Map{"Order": o})
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	return render(c, "order_history", fiber.Map{"Orders": h.Orders.ListForUser(u.ID)})
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	u := currentUser(c)
	oid := c.Params("id")
	o, err := h.Orders.GetByID(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	if u == nil || (o.UserID != u.ID && !u.IsAdmin()) {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	if _, err := h.Orders.Cancel(oid); err != nil {
		applog.Error(c, "order.cancel.fail", err, map[string]any{"order_id": oid})
		return c.Status(fiber.StatusBadRequest).SendString("This order can no longer be cancelled.")
	}
	applog.Audit(c, "order.cancel", map[string]any{"order_id": oid})
	return c.Redirect("/order/" + oid)
}
