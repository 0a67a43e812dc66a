package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// PutReview handles PUT /v1/reviews/:id.  It creates the reviewer's
// review or overwrites the existing one.  The body carries "stars" and
// "comment"; stars must be a JSON integer, so 1.5 and null fail.
func (h *Handler) PutReview(c echo.Context) error {
	id, _ := paramInt(c, "id")
	b, err := bindBody(c)
	if err != nil {
		return badBody(c)
	}
	if err := h.Reviews.AddReview(id, b.intField("stars"), b.stringField("comment")); err != nil {
		return writeError(c, err)
	}
	rv, _ := h.Reviews.GetReview(id)
	return c.JSON(http.StatusOK, rv)
}

// EditReview handles PATCH /v1/reviews/:id.  The review must exist.
func (h *Handler) EditReview(c echo.Context) error {
	id, ok := paramInt(c, "id")
	if !ok {
		return writeError(c, reviewNotFound())
	}
	b, err := bindBody(c)
	if err != nil {
		return badBody(c)
	}
	if err := h.Reviews.EditReview(id, b.intField("stars"), b.stringField("comment")); err != nil {
		return writeError(c, err)
	}
	rv, _ := h.Reviews.GetReview(id)
	return c.JSON(http.StatusOK, rv)
}

// GetReview handles GET /v1/reviews/:id.  A non-integer id is a bad
// request; an integer id without a review is 404.
func (h *Handler) GetReview(c echo.Context) error {
	id, ok := paramInt(c, "id")
	if !ok {
		return writeError(c, &repository.Error{Kind: repository.ErrInvalidReviewerID, Message: repository.MsgInvalidReviewID})
	}
	rv, found := h.Reviews.GetReview(id)
	if !found {
		return writeError(c, reviewNotFound())
	}
	return c.JSON(http.StatusOK, rv)
}

// DeleteReview handles DELETE /v1/reviews/:id.
func (h *Handler) DeleteReview(c echo.Context) error {
	id, ok := paramInt(c, "id")
	if !ok {
		return writeError(c, reviewNotFound())
	}
	if err := h.Reviews.DeleteReview(id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListReviews handles GET /v1/reviews.
func (h *Handler) ListReviews(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Reviews.List())
}

func reviewNotFound() error {
	return &repository.Error{Kind: repository.ErrReviewNotFound, Message: repository.MsgReviewNotFound}
}
