package services

import (
	"errors"

	"lofireads/internal/cart"
	"lofireads/internal/domain"
	"lofireads/internal/stores"
)

var ErrCartEmpty = errors.New("cart empty")

// OrderService turns a session cart into a persisted order at checkout.
type OrderService struct {
	Carts  *cart.Manager
	Orders *stores.OrderStore
}

func NewOrderService(carts *cart.Manager, orders *stores.OrderStore) *OrderService {
	return &OrderService{Carts: carts, Orders: orders}
}

// Checkout snapshots the session cart into a new order and clears the cart.
// An empty cart is a reported condition.
func (s *OrderService) Checkout(sessionID, userID string, shipping domain.Address, billing *domain.Address, payment domain.PaymentMethod) (domain.Order, error) {
	c := s.Carts.For(sessionID)
	lines := c.Lines()
	if len(lines) == 0 {
		return domain.Order{}, ErrCartEmpty
	}
	o := s.Orders.Create(stores.CreateOrderInput{
		UserID:          userID,
		Items:           lines,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Payment:         payment,
	})
	c.Clear()
	return o, nil
}
