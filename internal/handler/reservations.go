package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// CreateReservation handles POST /v1/reservations.  The body carries
// "owner_id", "user_name", "date" and "beds".  Values of the wrong JSON
// type are passed on as zero values, so validation still reports the
// first bad field in the store's order.  The owner must be an existing
// user.  Returns 201 with the recorded reservation.
func (h *Handler) CreateReservation(c echo.Context) error {
	b, err := bindBody(c)
	if err != nil {
		return badBody(c)
	}
	res, err := h.Booking.Book(c.Request().Context(),
		b.intField("owner_id"), b.stringField("user_name"), b.stringField("date"), b.intField("beds"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// ListReservations handles GET /v1/reservations.
func (h *Handler) ListReservations(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Reservations.List())
}

// GetReservation handles GET /v1/reservations/:number.
func (h *Handler) GetReservation(c echo.Context) error {
	n, ok := paramInt(c, "number")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	res, found := h.Reservations.Get(n)
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.JSON(http.StatusOK, res)
}

// UserReservations handles GET /v1/users/:id/reservations.  Any integer
// id is accepted and an id without reservations yields an empty list;
// only a non-integer id is rejected.
func (h *Handler) UserReservations(c echo.Context) error {
	id, ok := paramInt(c, "id")
	if !ok {
		return writeError(c, &repository.Error{Kind: repository.ErrInvalidUserID, Message: repository.MsgInvalidUserID})
	}
	return c.JSON(http.StatusOK, h.Reservations.UserReservations(id))
}

// CancelReservations handles DELETE /v1/users/:id/reservations.  It
// cancels every reservation of the owner and reports whether any
// existed; nothing to cancel is not an error.
func (h *Handler) CancelReservations(c echo.Context) error {
	id, ok := paramInt(c, "id")
	if !ok {
		return writeError(c, &repository.Error{Kind: repository.ErrInvalidUserID, Message: repository.MsgInvalidUserID})
	}
	cancelled := h.Booking.Cancel(c.Request().Context(), id)
	return c.JSON(http.StatusOK, echo.Map{"cancelled": cancelled})
}
