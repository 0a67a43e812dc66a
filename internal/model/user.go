package model

// User represents an account in the user directory.  The
// Reservations slice holds opaque reservation references (the
// reservation numbers handed out by the reservation store); the
// directory only inspects it for emptiness before deletion.
//
// Fields:
//  ID           – sequential identifier, never reused.
//  Email        – unique among existing users.
//  Password     – plain password, 8 characters or more.
//  Reservations – references to the user's reservations.
type User struct {
    ID           int    `json:"id"`
    Email        string `json:"email"`
    Password     string `json:"-"`
    Reservations []int  `json:"reservations"`
}

// HasReservations reports whether any reservation still references u.
func (u User) HasReservations() bool { return len(u.Reservations) > 0 }

// Clone returns a copy of u that does not share the Reservations
// backing array.
func (u User) Clone() User {
    c := u
    c.Reservations = append([]int{}, u.Reservations...)
    return c
}
