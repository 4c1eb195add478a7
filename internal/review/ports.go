package review

import (
	"context"
)

// Repository defines the contract for review data storage.
type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (Review, error)
	ExistsForUser(ctx context.Context, bookID, userID string) (bool, error)
	Update(ctx context.Context, id string, in UpdateInput) (Review, error)
	Delete(ctx context.Context, id string) error
	ListByBook(ctx context.Context, bookID string, limit, offset int) ([]Review, error)
	StatsByBook(ctx context.Context, bookID string) (Stats, error)
}

// BookChecker reports whether a book exists.
type BookChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}
