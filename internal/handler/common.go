package handler // handler exposes the booking stores over HTTP

import (
	"encoding/json" // request bodies are decoded with UseNumber so integers stay exact
	"errors"        // errors.Is for io.EOF
	"io"            // io.EOF marks an empty streamed body
	"net/http"      // HTTP status codes

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/hotel-reservation/internal/repository" // in-memory stores and error kinds
	"github.com/iliyamo/hotel-reservation/internal/service"    // booking facade
	"github.com/iliyamo/hotel-reservation/internal/validate"   // strict input coercion
)

// Handler bundles the stores and the booking facade.  Reservations are
// created and cancelled through Booking so that users' reservation
// references stay in step; reads go to the stores directly.
type Handler struct {
	Users        *repository.UserRepo
	Reservations *repository.ReservationRepo
	Reviews      *repository.ReviewRepo
	Booking      *service.BookingService
}

// NewHandler constructs a Handler and panics if any dependency is nil.
func NewHandler(users *repository.UserRepo, reservations *repository.ReservationRepo, reviews *repository.ReviewRepo, booking *service.BookingService) *Handler {
	if users == nil || reservations == nil || reviews == nil || booking == nil {
		panic("nil dependency passed to NewHandler")
	}
	return &Handler{Users: users, Reservations: reservations, Reviews: reviews, Booking: booking}
}

// Health reports liveness together with the size of each store.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":       "ok",
		"users":        h.Users.Len(),
		"reservations": h.Reservations.Len(),
		"reviews":      h.Reviews.Len(),
	})
}

// body is a decoded JSON object whose values keep their JSON kinds.
type body map[string]any

// bindBody decodes the request body into a loosely typed map.  Numbers
// arrive as json.Number so validate.Int can tell 1 from 1.5.  An empty
// body yields an empty map.
func bindBody(c echo.Context) (body, error) {
	b := body{}
	req := c.Request()
	if req.ContentLength == 0 {
		return b, nil
	}
	dec := json.NewDecoder(req.Body)
	dec.UseNumber()
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return body{}, nil
		}
		return nil, err
	}
	if b == nil {
		b = body{}
	}
	return b, nil
}

// intField returns the field as an int, or 0 when it is absent or not
// an integer.  Every store rejects 0 for the fields read this way, so
// a wrong type surfaces as the field's validation error in order.
func (b body) intField(key string) int {
	n, ok := validate.Int(b[key])
	if !ok {
		return 0
	}
	return n
}

// stringField returns the field as a string, or "" when it is absent or
// not a string.
func (b body) stringField(key string) string {
	s, _ := validate.String(b[key])
	return s
}

// paramInt parses a path parameter.  ok is false for non-integers.
func paramInt(c echo.Context, name string) (int, bool) {
	return validate.Param(c.Param(name))
}

// writeError maps store error kinds to status codes.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case repository.IsValidation(err):
		status = http.StatusBadRequest
	case repository.IsNotFound(err):
		status = http.StatusNotFound
	case repository.IsConflict(err):
		status = http.StatusConflict
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
}
