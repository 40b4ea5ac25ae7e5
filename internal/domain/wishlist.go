package domain

import "time"

// WishlistEntry is a saved book, unique per (user, book) pair.
type WishlistEntry struct {
	Book    Book      `json:"book"`
	AddedAt time.Time `json:"addedAt"`
}
