package model

// Review is a single star rating with a comment.  The ID is the
// reviewer's user id and doubles as the key, so there is at most one
// review per reviewer.
//
// Fields:
//  ID      – reviewer id.
//  Stars   – rating from 1 to 5 inclusive.
//  Comment – non-empty free text.
type Review struct {
    ID      int    `json:"id"`
    Stars   int    `json:"stars"`
    Comment string `json:"comment"`
}
