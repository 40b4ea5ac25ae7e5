package services

import (
	"lofireads/internal/cart"
	"lofireads/internal/catalog"
	"lofireads/internal/domain"
)

// CartService resolves a session's cart and applies catalog-checked
// mutations to it.
type CartService struct {
	Carts   *cart.Manager
	Catalog *catalog.Provider
}

func NewCartService(carts *cart.Manager, cat *catalog.Provider) *CartService {
	return &CartService{Carts: carts, Catalog: cat}
}

// Add puts one copy of bookID into the session cart.
func (s *CartService) Add(sessionID, bookID string) error {
	b, err := s.Catalog.GetByID(bookID)
	if err != nil {
		return err
	}
	s.Carts.For(sessionID).Add(b)
	return nil
}

// Remove drops the line for bookID.
func (s *CartService) Remove(sessionID, bookID string) {
	s.Carts.For(sessionID).Remove(bookID)
}

// SetQuantity adjusts an existing line; qty <= 0 removes it.
func (s *CartService) SetQuantity(sessionID, bookID string, qty int) {
	s.Carts.For(sessionID).SetQuantity(bookID, qty)
}

// Clear empties the session cart.
func (s *CartService) Clear(sessionID string) {
	s.Carts.For(sessionID).Clear()
}

type CartView struct {
	Lines      []domain.CartLine
	TotalItems int
	TotalPrice float64
}

// View snapshots the session cart with derived totals.
func (s *CartService) View(sessionID string) CartView {
	c := s.Carts.For(sessionID)
	return CartView{
		Lines:      c.Lines(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}
