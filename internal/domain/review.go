package domain

import "time"

// Review is a persisted per-book rating record. Rating is always within
// [1,5]; Helpful only ever increases.
type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Helpful   int       `json:"helpful"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingStats aggregates reviews for one book. Average is rounded to one
// decimal and is 0 when there are no reviews.
type RatingStats struct {
	BookID       string      `json:"bookId"`
	Average      float64     `json:"averageRating"`
	Total        int         `json:"totalReviews"`
	Distribution map[int]int `json:"ratingDistribution"` // buckets 1..5, always populated
}
