package repository

import (
	"sync"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/validate"
)

// ReservationRepo keeps room bookings in insertion order.  It detects
// double bookings and hands out reservation numbers from a counter that
// only moves forward, so a number is never reused after a cancellation.  It never looks at the user directory; keeping
// User.Reservations in step is the caller's job (see
// service.BookingService).
type ReservationRepo struct {
	mu           sync.Mutex
	reservations []model.Reservation
	nextNumber   int
}

// NewReservationRepo returns an empty reservation store.
func NewReservationRepo() *ReservationRepo { return &ReservationRepo{nextNumber: 1} }

// Book validates the request and records a new reservation.  Checks run
// in a fixed order and the first failure is returned: owner id, user
// name presence, user name format, date format, beds.  A reservation
// with the same owner, user name and date fails with
// ErrDuplicateBooking.  Until the first cancellation the new number
// equals the count of stored reservations plus one.
func (r *ReservationRepo) Book(ownerID int, userName, date string, beds int) (model.Reservation, error) {
	if ownerID <= 0 {
		return model.Reservation{}, newError(ErrInvalidUserID, MsgInvalidUserID)
	}
	if userName == "" {
		return model.Reservation{}, newError(ErrInvalidUserName, MsgInvalidUserName)
	}
	if !validate.UserName(userName) {
		return model.Reservation{}, newError(ErrInvalidUserNameFormat, MsgInvalidUserNameFormat)
	}
	if date == "" || !validate.Date(date) {
		return model.Reservation{}, newError(ErrInvalidDateFormat, MsgInvalidDateFormat)
	}
	if beds <= 0 {
		return model.Reservation{}, newError(ErrInvalidBedsCount, MsgInvalidBedsCount)
	}

	res := model.Reservation{OwnerID: ownerID, Beds: beds, UserName: userName, Date: date}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reservations {
		if existing.Conflicts(res) {
			return model.Reservation{}, newError(ErrDuplicateBooking, MsgDuplicateBooking)
		}
	}
	res.Number = r.nextNumber
	r.nextNumber++
	r.reservations = append(r.reservations, res)
	return res, nil
}

// CancelBooking removes every reservation owned by ownerID.  It reports
// whether anything was removed; an unknown owner is not an error.
func (r *ReservationRepo) CancelBooking(ownerID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.reservations[:0]
	removed := 0
	for _, res := range r.reservations {
		if res.OwnerID == ownerID {
			removed++
			continue
		}
		kept = append(kept, res)
	}
	// clear the tail so removed entries are not retained
	for i := len(kept); i < len(r.reservations); i++ {
		r.reservations[i] = model.Reservation{}
	}
	r.reservations = kept
	return removed > 0
}

// UserReservations returns the reservations owned by ownerID in booking
// order.  Any integer is a valid key; zero and negative ids simply
// match nothing.  The result is never nil.
func (r *ReservationRepo) UserReservations(ownerID int) []model.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Reservation{}
	for _, res := range r.reservations {
		if res.OwnerID == ownerID {
			out = append(out, res)
		}
	}
	return out
}

// Get returns the reservation carrying the given number.
func (r *ReservationRepo) Get(number int) (model.Reservation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.reservations {
		if res.Number == number {
			return res, true
		}
	}
	return model.Reservation{}, false
}

// List returns a snapshot of all reservations in booking order.
func (r *ReservationRepo) List() []model.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Reservation{}, r.reservations...)
}

// Len returns the number of stored reservations.
func (r *ReservationRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reservations)
}
