package repository

import (
	"sort"
	"sync"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReviewRepo stores at most one review per reviewer id.
//
// Policies: AddReview on an id that already has a review overwrites it;
// EditReview and DeleteReview on a missing id fail with
// ErrReviewNotFound.
type ReviewRepo struct {
	mu      sync.Mutex
	reviews map[int]model.Review
}

// NewReviewRepo returns an empty review store.
func NewReviewRepo() *ReviewRepo {
	return &ReviewRepo{reviews: make(map[int]model.Review)}
}

// AddReview creates the review for id, replacing any existing one.
func (r *ReviewRepo) AddReview(id, stars int, comment string) error {
	if id <= 0 {
		return newError(ErrInvalidReviewerID, MsgInvalidReviewerID)
	}
	if err := checkReview(stars, comment); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[id] = model.Review{ID: id, Stars: stars, Comment: comment}
	return nil
}

// EditReview changes the stars and comment of an existing review.
// Existence is checked before the new values are validated.
func (r *ReviewRepo) EditReview(id, stars int, comment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return newError(ErrReviewNotFound, MsgReviewNotFound)
	}
	if err := checkReview(stars, comment); err != nil {
		return err
	}
	rv.Stars = stars
	rv.Comment = comment
	r.reviews[id] = rv
	return nil
}

// DeleteReview removes the review for id.
func (r *ReviewRepo) DeleteReview(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return newError(ErrReviewNotFound, MsgReviewNotFound)
	}
	delete(r.reviews, id)
	return nil
}

// GetReview returns the review for id, if any.
func (r *ReviewRepo) GetReview(id int) (model.Review, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	return rv, ok
}

// List returns all reviews ordered by id.
func (r *ReviewRepo) List() []model.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Review, 0, len(r.reviews))
	for _, rv := range r.reviews {
		out = append(out, rv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of stored reviews.
func (r *ReviewRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reviews)
}

func checkReview(stars int, comment string) error {
	if stars < 1 || stars > 5 {
		return newError(ErrInvalidStars, MsgInvalidStars)
	}
	if comment == "" {
		return newError(ErrInvalidComment, MsgInvalidComment)
	}
	return nil
}
