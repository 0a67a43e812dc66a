package repository

import (
	"sort"
	"sync"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// UserRepo is the authoritative user directory.  Emails are unique among
// existing users and ids come from a counter that is never rewound, so
// a deleted user's id is not handed out again (its email may be).
type UserRepo struct {
	mu     sync.Mutex
	users  map[int]*model.User
	nextID int
}

// NewUserRepo returns an empty directory whose first id is 1.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[int]*model.User), nextID: 1}
}

// AddUser creates a user and returns its id.  The duplicate check runs
// before field validation, matching the order clients rely on.
func (r *UserRepo) AddUser(email, password string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(email, 0) {
		return 0, newError(ErrDuplicateEmail, MsgUserExists)
	}
	if err := checkCredentials(email, password); err != nil {
		return 0, err
	}

	id := r.nextID
	r.users[id] = &model.User{ID: id, Email: email, Password: password, Reservations: []int{}}
	r.nextID++
	return id, nil
}

// UpdateUser replaces the email and password of an existing user.
// Keeping one's own email is allowed; taking another user's is not.
// The user's reservations are left untouched.
func (r *UserRepo) UpdateUser(id int, email, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return newError(ErrUserNotFound, MsgUserNotFound)
	}
	if err := checkCredentials(email, password); err != nil {
		return err
	}
	if r.emailTakenLocked(email, id) {
		return newError(ErrDuplicateEmail, MsgEmailExists)
	}
	u.Email = email
	u.Password = password
	return nil
}

// DeleteUser removes a user that no reservation refers to.
func (r *UserRepo) DeleteUser(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return newError(ErrUserNotFound, MsgUserNotExisting)
	}
	if u.HasReservations() {
		return newError(ErrUserHasReservations, MsgUserHasReservations)
	}
	delete(r.users, id)
	return nil
}

// GetUser looks a user up by id.  It never fails: zero, negative and
// unknown ids all report false.  The returned value is a copy.
func (r *UserRepo) GetUser(id int) (model.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return model.User{}, false
	}
	return u.Clone(), true
}

// AttachReservation appends a reservation reference to the user.
func (r *UserRepo) AttachReservation(id, number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return newError(ErrUserNotFound, MsgUserNotFound)
	}
	u.Reservations = append(u.Reservations, number)
	return nil
}

// ClearReservations drops every reservation reference held by the user.
func (r *UserRepo) ClearReservations(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return newError(ErrUserNotFound, MsgUserNotFound)
	}
	u.Reservations = []int{}
	return nil
}

// List returns copies of all users ordered by id.
func (r *UserRepo) List() []model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of existing users.
func (r *UserRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// emailTakenLocked reports whether a user other than except holds email.
// Callers must hold r.mu.
func (r *UserRepo) emailTakenLocked(email string, except int) bool {
	for _, u := range r.users {
		if u.ID != except && u.Email == email {
			return true
		}
	}
	return false
}

func checkCredentials(email, password string) error {
	if email == "" {
		return newError(ErrInvalidEmail, MsgInvalidEmail)
	}
	if len(password) < 8 {
		return newError(ErrWeakPassword, MsgWeakPassword)
	}
	return nil
}
