package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lofireads/internal/catalog"
	applog "lofireads/internal/log"
	"lofireads/internal/services"
	"lofireads/internal/stores"
	"lofireads/internal/validate"
)

type BookHandler struct {
	Catalog *catalog.Provider
	Reviews *stores.ReviewStore
	Wish    *services.WishlistService
	Auth    *services.AuthService
}

// Home shows a featured slice of the catalog plus the facet summary.
func (h *BookHandler) Home(c *fiber.Ctx) error {
	featured := h.Catalog.List(nil, catalog.SortYearDesc)
	if len(featured) > 4 {
		featured = featured[:4]
	}
	return render(c, "home", fiber.Map{
		"Featured": featured,
		"Genres":   h.Catalog.Genres(),
	})
}

// List renders the catalog narrowed by the filter/sort query params.
func (h *BookHandler) List(c *fiber.Ctx) error {
	f := &catalog.Filters{
		MinPrice: validate.PriceBound(c.Query("minPrice")),
		MaxPrice: validate.PriceBound(c.Query("maxPrice")),
		MinYear:  validate.YearBound(c.Query("minYear")),
		MaxYear:  validate.YearBound(c.Query("maxYear")),
	}
	if g := c.Query("genre"); g != "" {
		f.Genres = strings.Split(g, ",")
	}
	if a := c.Query("author"); a != "" {
		f.Authors = strings.Split(a, ",")
	}
	if q, ok := validate.Q(c.Query("q")); ok {
		f.Query = q
	}
	sortBy := catalog.Sort(c.Query("sort"))

	books := h.Catalog.List(f, sortBy)
	applog.Info(c, "books.list", map[string]any{"count": len(books), "sort": string(sortBy)})
	return render(c, "books", fiber.Map{
		"Books":      books,
		"Genres":     h.Catalog.Genres(),
		"Authors":    h.Catalog.Authors(),
		"PriceRange": h.Catalog.PriceRange(),
		"YearRange":  h.Catalog.YearRange(),
		"Query":      f.Query,
		"Sort":       string(sortBy),
	})
}

// Detail renders one book with its reviews, rating stats and
// recommendations.
func (h *BookHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This book is no longer available"})
	}
	b, err := h.Catalog.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This book is no longer available"})
	}

	data := fiber.Map{
		"Book":        b,
		"Reviews":     h.Reviews.ListForBook(b.ID),
		"Stats":       h.Reviews.Stats(b.ID),
		"Recommended": h.Catalog.Recommend(b.ID, 4),
	}

	// Wishlist membership and own-review state for logged-in visitors.
	if sid := c.Cookies("sid"); sid != "" {
		if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
			data["InWishlist"] = h.Wish.Contains(u.ID, b.ID)
			if own, err := h.Reviews.ForUserAndBook(u.ID, b.ID); err == nil {
				data["OwnReview"] = own
			}
		}
	}
	return render(c, "book", data)
}
