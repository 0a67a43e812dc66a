package model

// Reservation records a room booking made on behalf of an owner.
// Reservations are created by the reservation store and never
// mutated afterwards; cancelling removes them entirely.
//
// Fields:
//  OwnerID  – id of the user the booking belongs to.
//  Number   – store-local sequence number, 1-based.
//  Beds     – number of beds booked.
//  UserName – alphanumeric name the booking was made under.
//  Date     – booking date in YYYY-MM-DD form (format checked only).
type Reservation struct {
    OwnerID  int    `json:"owner_id"`
    Number   int    `json:"reservation_number"`
    Beds     int    `json:"beds"`
    UserName string `json:"user_name"`
    Date     string `json:"date"`
}

// Conflicts reports whether r and o describe the same owner, user name
// and date.  Two such reservations may not coexist in a store.
func (r Reservation) Conflicts(o Reservation) bool {
    return r.OwnerID == o.OwnerID && r.UserName == o.UserName && r.Date == o.Date
}
