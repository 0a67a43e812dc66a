// Package repository holds the in-memory stores for users, reservations
// and reviews.  Each store validates its input and enforces its own
// uniqueness rules; the error kinds below let higher layers such as
// handlers distinguish between failure scenarios with errors.Is.
package repository

import "errors"

// Error kinds.  Every failure returned by a store wraps exactly one of
// these values.
var (
	ErrInvalidUserID         = errors.New("invalid user id")
	ErrInvalidUserName       = errors.New("invalid user name")
	ErrInvalidUserNameFormat = errors.New("invalid user name format")
	ErrInvalidDateFormat     = errors.New("invalid date format")
	ErrInvalidBedsCount      = errors.New("invalid beds count")
	ErrDuplicateBooking      = errors.New("duplicate booking")

	ErrInvalidEmail        = errors.New("invalid email")
	ErrDuplicateEmail      = errors.New("duplicate email")
	ErrWeakPassword        = errors.New("weak password")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserHasReservations = errors.New("user has reservations")

	ErrInvalidReviewerID = errors.New("invalid reviewer id")
	ErrInvalidStars      = errors.New("invalid stars")
	ErrInvalidComment    = errors.New("invalid comment")
	ErrReviewNotFound    = errors.New("review not found")
)

// Error pairs an error kind with the fixed message shown to callers.
// errors.Is(err, ErrDuplicateEmail) matches on Kind while Error()
// returns Message unchanged.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error { return &Error{Kind: kind, Message: msg} }

// Messages returned to callers.  Tests and clients match on these
// strings, so they must stay stable.
const (
	MsgInvalidUserID         = "User ID must be a valid integer."
	MsgInvalidUserName       = "User name must be a valid string."
	MsgInvalidUserNameFormat = "User name must contain only letters and numbers."
	MsgInvalidDateFormat     = "Date must be a valid string in 'YYYY-MM-DD' format."
	MsgInvalidBedsCount      = "Number of beds must be a valid integer."
	MsgDuplicateBooking      = "User already booked room(s) on this date."

	MsgInvalidEmail        = "Email must be a valid string."
	MsgUserExists          = "User already exists."
	MsgEmailExists         = "Email already exists."
	MsgWeakPassword        = "Password must be longer than 8 characters."
	MsgUserNotFound        = "User not exists."
	MsgUserNotExisting     = "User is not existing."
	MsgUserHasReservations = "User have existing reservations."

	// reviews are keyed by the reviewer's user id
	MsgInvalidReviewerID = "User ID must be a valid integer."
	MsgInvalidReviewID   = "Review ID must be a valid integer."
	MsgInvalidStars      = "Stars must be a valid integer between 1 and 5."
	MsgInvalidComment    = "Comment must be a string."
	MsgReviewNotFound    = "Review with this ID does not exist."
)

// IsValidation reports whether err was caused by malformed input rather
// than by the current state of a store.
func IsValidation(err error) bool {
	for _, k := range []error{
		ErrInvalidUserID, ErrInvalidUserName, ErrInvalidUserNameFormat,
		ErrInvalidDateFormat, ErrInvalidBedsCount, ErrInvalidEmail,
		ErrWeakPassword, ErrInvalidReviewerID, ErrInvalidStars, ErrInvalidComment,
	} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the addressed record is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrReviewNotFound)
}

// IsConflict reports whether err is a uniqueness or dependency conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateBooking) || errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrUserHasReservations)
}
