// Package service joins the user directory and the reservation store.
// The stores know nothing about each other; BookingService keeps
// User.Reservations in step with the reservations actually recorded
// and publishes a booking event for every change.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// EventPublisher delivers booking events.  queue.AMQPPublisher and
// queue.NopPublisher satisfy it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// BookingService is the facade over UserRepo and ReservationRepo.  Its
// mutex makes book+attach, cancel+clear and delete atomic with respect
// to each other.  Publishing happens after the lock is released.
type BookingService struct {
	mu           sync.Mutex
	Users        *repository.UserRepo
	Reservations *repository.ReservationRepo
	Events       EventPublisher
	Logger       *log.Logger
	// PublishTimeout bounds each event publish.
	PublishTimeout time.Duration
}

// NewBookingService wires the facade.  A nil publisher drops events and
// a nil logger gets a default one named "booking".
func NewBookingService(users *repository.UserRepo, reservations *repository.ReservationRepo, events EventPublisher, logger *log.Logger) *BookingService {
	if users == nil || reservations == nil {
		panic("nil repository passed to NewBookingService")
	}
	if events == nil {
		events = queue.NopPublisher{}
	}
	if logger == nil {
		logger = log.New("booking")
	}
	return &BookingService{
		Users:          users,
		Reservations:   reservations,
		Events:         events,
		Logger:         logger,
		PublishTimeout: 3 * time.Second,
	}
}

// Book records a reservation for an existing user and attaches the new
// reservation number to that user.  A non-positive owner id fails with
// ErrInvalidUserID as in ReservationRepo.Book; a positive id without a
// user fails with ErrUserNotFound before the remaining fields are
// checked.
func (s *BookingService) Book(ctx context.Context, ownerID int, userName, date string, beds int) (model.Reservation, error) {
	s.mu.Lock()
	if ownerID > 0 {
		if _, ok := s.Users.GetUser(ownerID); !ok {
			s.mu.Unlock()
			return model.Reservation{}, &repository.Error{Kind: repository.ErrUserNotFound, Message: repository.MsgUserNotFound}
		}
	}
	res, err := s.Reservations.Book(ownerID, userName, date, beds)
	if err != nil {
		s.mu.Unlock()
		return model.Reservation{}, err
	}
	// the user was checked under the same lock and deletions go through s
	if err := s.Users.AttachReservation(ownerID, res.Number); err != nil {
		s.mu.Unlock()
		return model.Reservation{}, err
	}
	s.mu.Unlock()

	s.Logger.Infof("reservation %d booked for owner %d on %s", res.Number, ownerID, date)
	ev := queue.NewBookingEvent(queue.BookingCreated, ownerID)
	ev.ReservationNumber = res.Number
	ev.UserName = res.UserName
	ev.Date = res.Date
	ev.Beds = res.Beds
	s.publish(ctx, ev)
	return res, nil
}

// Cancel removes all reservations of ownerID and clears the owner's
// reservation references.  It reports whether anything was cancelled.
func (s *BookingService) Cancel(ctx context.Context, ownerID int) bool {
	s.mu.Lock()
	cancelled := s.Reservations.CancelBooking(ownerID)
	if cancelled {
		// reservations booked straight on the store may have no user
		if err := s.Users.ClearReservations(ownerID); err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			s.Logger.Errorf("clear reservations of owner %d: %v", ownerID, err)
		}
	}
	s.mu.Unlock()

	if cancelled {
		s.Logger.Infof("reservations of owner %d cancelled", ownerID)
		s.publish(ctx, queue.NewBookingEvent(queue.BookingCancelled, ownerID))
	}
	return cancelled
}

// DeleteUser removes a user through the facade so it cannot interleave
// with a booking for the same user.
func (s *BookingService) DeleteUser(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Users.DeleteUser(id)
}

func (s *BookingService) publish(ctx context.Context, ev queue.BookingEvent) {
	ctx, cancel := context.WithTimeout(ctx, s.PublishTimeout)
	defer cancel()
	if err := s.Events.Publish(ctx, ev); err != nil {
		s.Logger.Warnf("publish %s for owner %d: %v", ev.Type, ev.OwnerID, err)
	}
}
