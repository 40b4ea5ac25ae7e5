package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "lofireads/internal/log"
	"lofireads/internal/stores"
	"lofireads/internal/validate"
)

// ReviewHandler mutating routes run behind RequireUser.
type ReviewHandler struct {
	Reviews *stores.ReviewStore
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	bookID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing book id")
	}
	rating := validate.Rating(c.FormValue("rating"))
	title := strings.TrimSpace(c.FormValue("title"))
	content := strings.TrimSpace(c.FormValue("content"))

	// One review per (user, book): edits replace the existing record.
	if own, err := h.Reviews.ForUserAndBook(u.ID, bookID); err == nil {
		if _, err := h.Reviews.Update(own.ID, stores.ReviewUpdate{Rating: &rating, Title: &title, Content: &content}); err != nil {
			applog.Error(c, "review.update.fail", err, map[string]any{"review_id": own.ID})
			return c.Status(fiber.StatusBadRequest).SendString("Could not update review.")
		}
		applog.Audit(c, "review.update", map[string]any{"book": bookID})
		return c.Redirect("/book/" + bookID)
	}

	r := h.Reviews.Create(bookID, u.ID, u.Name, rating, title, content)
	applog.Audit(c, "review.create", map[string]any{"book": bookID, "review_id": r.ID})
	return c.Redirect("/book/" + bookID)
}

func (h *ReviewHandler) Helpful(c *fiber.Ctx) error {
	id := c.Params("id")
	r, err := h.Reviews.MarkHelpful(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Review not found"})
	}
	return c.Redirect("/book/" + r.BookID)
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	id := c.Params("id")
	r, err := h.Reviews.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Review not found"})
	}
	if r.UserID != u.ID && !u.IsAdmin() {
		applog.Security(c, "access.denied.review", map[string]any{"review_id": id})
		return c.Status(fiber.StatusForbidden).SendString("Not your review")
	}
	if !h.Reviews.Delete(id) {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Review not found"})
	}
	applog.Audit(c, "review.delete", map[string]any{"review_id": id})
	return c.Redirect("/book/" + r.BookID)
}
