package review

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a review is not found.
	ErrNotFound = errors.New("review not found")
	// ErrDuplicate is returned when the user already reviewed the book.
	ErrDuplicate = errors.New("review already exists")
)

// Reviewer is the public part of the author of a review.
type Reviewer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Review is a user's rating and text for one book.
type Review struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      Reviewer  `json:"user"`
}

// Stats aggregates every review of a book.
type Stats struct {
	AverageRating float64
	TotalReviews  int
}

type CreateInput struct {
	Content string `json:"content" validate:"required,notblank"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Content *string `json:"content" validate:"omitempty,notblank"`
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}
