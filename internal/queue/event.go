// Package queue defines the booking event payloads exchanged over the
// message broker together with the RabbitMQ publisher and consumer.
package queue

import (
    "time"

    "github.com/google/uuid"
)

// Event types published by the booking service.
const (
    BookingCreated   = "booking.created"
    BookingCancelled = "booking.cancelled"
)

// BookingEvent is published when a reservation is recorded or when an
// owner's reservations are cancelled.  It carries enough information for
// downstream consumers to log or notify without querying the stores.
type BookingEvent struct {
    ID                string `json:"id"`
    Type              string `json:"type"`
    OwnerID           int    `json:"owner_id"`
    ReservationNumber int    `json:"reservation_number,omitempty"`
    UserName          string `json:"user_name,omitempty"`
    Date              string `json:"date,omitempty"`
    Beds              int    `json:"beds,omitempty"`
    OccurredAt        string `json:"occurred_at"`
}

// NewBookingEvent stamps a fresh event id and the current UTC time.
func NewBookingEvent(eventType string, ownerID int) BookingEvent {
    return BookingEvent{
        ID:         uuid.NewString(),
        Type:       eventType,
        OwnerID:    ownerID,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
}
