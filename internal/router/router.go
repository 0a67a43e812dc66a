package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/hotel-reservation/internal/handler" // handlers over the booking stores
)

// RegisterRoutes registers the routes that sit outside the versioned
// API.  Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.GET("/healthz", h.Health)
}

// RegisterAPI registers the /v1 user, reservation and review routes.
// The given middleware (rate limiting, response cache) wraps only this
// group so health checks are never limited or cached.
func RegisterAPI(e *echo.Echo, h *handler.Handler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)

	g.POST("/users", h.CreateUser)
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)

	// Reservations are created through the booking facade and cancelled
	// per owner, so cancellation lives under the user resource.
	g.POST("/reservations", h.CreateReservation)
	g.GET("/reservations", h.ListReservations)
	g.GET("/reservations/:number", h.GetReservation)
	g.GET("/users/:id/reservations", h.UserReservations)
	g.DELETE("/users/:id/reservations", h.CancelReservations)

	// PUT creates or overwrites, PATCH edits an existing review.
	g.PUT("/reviews/:id", h.PutReview)
	g.PATCH("/reviews/:id", h.EditReview)
	g.GET("/reviews", h.ListReviews)
	g.GET("/reviews/:id", h.GetReview)
	g.DELETE("/reviews/:id", h.DeleteReview)
}
