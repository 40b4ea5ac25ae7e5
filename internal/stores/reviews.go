package stores

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lofireads/internal/domain"
	"lofireads/internal/storage"
)

// ReviewStore persists per-book review records with aggregate stats.
type ReviewStore struct {
	mu sync.Mutex
	kv *storage.Store
}

func NewReviewStore(kv *storage.Store) *ReviewStore {
	return &ReviewStore{kv: kv}
}

func (s *ReviewStore) load() []domain.Review {
	var reviews []domain.Review
	s.kv.Get(storage.KeyReviews, &reviews)
	return reviews
}

func clampRating(r int) int {
	if r < 1 {
		return 1
	}
	if r > 5 {
		return 5
	}
	return r
}

// Create appends a review. Out-of-range ratings are clamped into [1,5]
// rather than rejected.
func (s *ReviewStore) Create(bookID, userID, userName string, rating int, title, content string) domain.Review {
	now := time.Now().UTC()
	r := domain.Review{
		ID:        fmt.Sprintf("review_%d_%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9]),
		BookID:    bookID,
		UserID:    userID,
		UserName:  userName,
		Rating:    clampRating(rating),
		Title:     title,
		Content:   content,
		Helpful:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := append(s.load(), r)
	s.kv.Set(storage.KeyReviews, reviews)
	return r
}

// ListForBook returns bookID's reviews newest-first.
func (s *ReviewStore) ListForBook(bookID string) []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Review
	for _, r := range s.load() {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	sortReviewsNewestFirst(out)
	return out
}

// ListForUser returns userID's reviews newest-first.
func (s *ReviewStore) ListForUser(userID string) []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Review
	for _, r := range s.load() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sortReviewsNewestFirst(out)
	return out
}

func sortReviewsNewestFirst(reviews []domain.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}

// GetByID looks up one review.
func (s *ReviewStore) GetByID(reviewID string) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.load() {
		if r.ID == reviewID {
			return r, nil
		}
	}
	return domain.Review{}, ErrNotFound
}

// ForUserAndBook returns the user's review of a book, if any.
func (s *ReviewStore) ForUserAndBook(userID, bookID string) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.load() {
		if r.UserID == userID && r.BookID == bookID {
			return r, nil
		}
	}
	return domain.Review{}, ErrNotFound
}

// ReviewUpdate holds the editable fields; nil means leave unchanged.
type ReviewUpdate struct {
	Rating  *int
	Title   *string
	Content *string
}

// Update merges upd into the review and refreshes its update timestamp.
func (s *ReviewStore) Update(reviewID string, upd ReviewUpdate) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := s.load()
	for i := range reviews {
		if reviews[i].ID != reviewID {
			continue
		}
		if upd.Rating != nil {
			reviews[i].Rating = clampRating(*upd.Rating)
		}
		if upd.Title != nil {
			reviews[i].Title = *upd.Title
		}
		if upd.Content != nil {
			reviews[i].Content = *upd.Content
		}
		reviews[i].UpdatedAt = time.Now().UTC()
		s.kv.Set(storage.KeyReviews, reviews)
		return reviews[i], nil
	}
	return domain.Review{}, ErrNotFound
}

// Delete removes the review, reporting whether a record went away.
func (s *ReviewStore) Delete(reviewID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := s.load()
	kept := reviews[:0]
	for _, r := range reviews {
		if r.ID != reviewID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reviews) {
		return false
	}
	s.kv.Set(storage.KeyReviews, kept)
	return true
}

// MarkHelpful increments the review's helpful counter by one.
func (s *ReviewStore) MarkHelpful(reviewID string) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := s.load()
	for i := range reviews {
		if reviews[i].ID == reviewID {
			reviews[i].Helpful++
			s.kv.Set(storage.KeyReviews, reviews)
			return reviews[i], nil
		}
	}
	return domain.Review{}, ErrNotFound
}

// Stats aggregates bookID's reviews: average to one decimal (0 when empty),
// total count, and a full 1..5 distribution.
func (s *ReviewStore) Stats(bookID string) domain.RatingStats {
	stats := domain.RatingStats{
		BookID:       bookID,
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	sum := 0
	for _, r := range s.ListForBook(bookID) {
		stats.Distribution[r.Rating]++
		stats.Total++
		sum += r.Rating
	}
	if stats.Total > 0 {
		stats.Average = math.Round(float64(sum)/float64(stats.Total)*10) / 10
	}
	return stats
}
