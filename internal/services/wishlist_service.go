package services

import (
	"lofireads/internal/cart"
	"lofireads/internal/catalog"
	"lofireads/internal/domain"
	"lofireads/internal/stores"
)

// WishlistService fronts the persisted wishlist and coordinates the one
// cross-component operation (move-all-to-cart) so the store and the cart
// stay decoupled.
type WishlistService struct {
	Wish    *stores.WishlistStore
	Catalog *catalog.Provider
	Carts   *cart.Manager
}

func NewWishlistService(wish *stores.WishlistStore, cat *catalog.Provider, carts *cart.Manager) *WishlistService {
	return &WishlistService{Wish: wish, Catalog: cat, Carts: carts}
}

// List returns the user's saved books in insertion order.
func (s *WishlistService) List(userID string) []domain.WishlistEntry {
	return s.Wish.List(userID)
}

// Save adds bookID to the user's wishlist; idempotent.
func (s *WishlistService) Save(userID, bookID string) error {
	b, err := s.Catalog.GetByID(bookID)
	if err != nil {
		return err
	}
	s.Wish.Add(userID, b)
	return nil
}

// Unsave removes bookID from the user's wishlist.
func (s *WishlistService) Unsave(userID, bookID string) {
	s.Wish.Remove(userID, bookID)
}

// Toggle flips membership and returns whether the book is now saved.
func (s *WishlistService) Toggle(userID, bookID string) (bool, error) {
	b, err := s.Catalog.GetByID(bookID)
	if err != nil {
		return false, err
	}
	return s.Wish.Toggle(userID, b), nil
}

// Contains reports membership.
func (s *WishlistService) Contains(userID, bookID string) bool {
	return s.Wish.Contains(userID, bookID)
}

// Clear empties the user's wishlist.
func (s *WishlistService) Clear(userID string) {
	s.Wish.Clear(userID)
}

// MoveAllToCart adds every saved book to the session cart and then clears
// the wishlist. The store only clears; the cart insertion happens here.
func (s *WishlistService) MoveAllToCart(userID, sessionID string) []domain.Book {
	entries := s.Wish.List(userID)
	c := s.Carts.For(sessionID)
	books := make([]domain.Book, 0, len(entries))
	for _, e := range entries {
		c.Add(e.Book)
		books = append(books, e.Book)
	}
	s.Wish.Clear(userID)
	return books
}
