package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// CreateUser handles POST /v1/users.  The body carries "email" and
// "password"; non-string values are treated as empty so the store
// reports them with its own messages.  Returns 201 with the new id.
func (h *Handler) CreateUser(c echo.Context) error {
	b, err := bindBody(c)
	if err != nil {
		return badBody(c)
	}
	id, err := h.Users.AddUser(b.stringField("email"), b.stringField("password"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// ListUsers handles GET /v1/users.
func (h *Handler) ListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Users.List())
}

// GetUser handles GET /v1/users/:id.  Malformed, non-positive and
// unknown ids all answer 404.
func (h *Handler) GetUser(c echo.Context) error {
	id, ok := paramInt(c, "id")
	if !ok {
		return writeError(c, userNotFound())
	}
	u, found := h.Users.GetUser(id)
	if !found {
		return writeError(c, userNotFound())
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateUser handles PUT /v1/users/:id with the same body as CreateUser.
func (h *Handler) UpdateUser(c echo.Context) error {
	id, ok := paramInt(c, "id")
	if !ok {
		return writeError(c, userNotFound())
	}
	b, err := bindBody(c)
	if err != nil {
		return badBody(c)
	}
	if err := h.Users.UpdateUser(id, b.stringField("email"), b.stringField("password")); err != nil {
		return writeError(c, err)
	}
	u, _ := h.Users.GetUser(id)
	return c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /v1/users/:id.  Users that still hold
// reservations answer 409.
func (h *Handler) DeleteUser(c echo.Context) error {
	id, ok := paramInt(c, "id")
	if !ok {
		return writeError(c, userNotFound())
	}
	if err := h.Booking.DeleteUser(id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func userNotFound() error {
	return &repository.Error{Kind: repository.ErrUserNotFound, Message: repository.MsgUserNotFound}
}
