package stores

import (
	"sync"
	"time"

	"lofireads/internal/domain"
	"lofireads/internal/storage"
)

// WishlistStore persists per-user saved books. Every mutation re-reads the
// full userId → entries map before writing it back, and the mutex keeps
// those read-modify-write cycles from interleaving.
type WishlistStore struct {
	mu sync.Mutex
	kv *storage.Store
}

func NewWishlistStore(kv *storage.Store) *WishlistStore {
	return &WishlistStore{kv: kv}
}

func (s *WishlistStore) load() map[string][]domain.WishlistEntry {
	data := map[string][]domain.WishlistEntry{}
	s.kv.Get(storage.KeyWishlist, &data)
	return data
}

// List returns userID's entries in insertion order.
func (s *WishlistStore) List(userID string) []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()[userID]
}

// Add appends a timestamped entry for book; no-op if already saved.
func (s *WishlistStore) Add(userID string, book domain.Book) []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	entries := data[userID]
	for _, e := range entries {
		if e.Book.ID == book.ID {
			return entries
		}
	}
	data[userID] = append(entries, domain.WishlistEntry{Book: book, AddedAt: time.Now().UTC()})
	s.kv.Set(storage.KeyWishlist, data)
	return data[userID]
}

// Remove drops the entry for bookID; no-op when absent.
func (s *WishlistStore) Remove(userID, bookID string) []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	entries := data[userID]
	kept := entries[:0]
	for _, e := range entries {
		if e.Book.ID != bookID {
			kept = append(kept, e)
		}
	}
	data[userID] = kept
	s.kv.Set(storage.KeyWishlist, data)
	return kept
}

// Contains reports whether userID has bookID saved.
func (s *WishlistStore) Contains(userID, bookID string) bool {
	for _, e := range s.List(userID) {
		if e.Book.ID == bookID {
			return true
		}
	}
	return false
}

// Toggle flips membership and returns the resulting state: true when the
// book is now saved. The check and the write happen under one lock so
// concurrent toggles cannot interleave between them.
func (s *WishlistStore) Toggle(userID string, book domain.Book) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	entries := data[userID]
	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.Book.ID == book.ID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if found {
		data[userID] = kept
	} else {
		data[userID] = append(kept, domain.WishlistEntry{Book: book, AddedAt: time.Now().UTC()})
	}
	s.kv.Set(storage.KeyWishlist, data)
	return !found
}

// Clear empties userID's wishlist.
func (s *WishlistStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	data[userID] = []domain.WishlistEntry{}
	s.kv.Set(storage.KeyWishlist, data)
}
