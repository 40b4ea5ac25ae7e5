package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lofireads/internal/domain"
	applog "lofireads/internal/log"
	"lofireads/internal/stores"
)

// AdminHandler routes run behind RequireAdmin.
type AdminHandler struct {
	Orders *stores.OrderStore
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	orders := h.Orders.ListAll()
	open := 0
	for _, o := range orders {
		if !o.Status.Terminal() {
			open++
		}
	}
	return render(c, "admin", fiber.Map{"TotalOrders": len(orders), "OpenOrders": open})
}

func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	return render(c, "admin_orders", fiber.Map{"Orders": h.Orders.ListAll()})
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	oid := c.Params("id")
	status := domain.OrderStatus(c.FormValue("status"))
	tracking := c.FormValue("tracking")

	if _, err := h.Orders.UpdateStatus(oid, status, tracking); err != nil {
		applog.Error(c, "admin.order.status.fail", err, map[string]any{"order_id": oid, "status": string(status)})
		return c.Status(fiber.StatusBadRequest).SendString("Could not update order status")
	}
	applog.Audit(c, "admin.order.status", map[string]any{"order_id": oid, "status": string(status)})
	return c.Redirect("/admin/orders")
}
