package book

import (
	"context"

	"bookreview/internal/pagination"
	"bookreview/internal/review"
)

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (Book, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Book, error)
	Count(ctx context.Context, f Filter) (int, error)
}

// ReviewReader exposes the reviews shown on a book's page.
type ReviewReader interface {
	ListByBook(ctx context.Context, bookID string, p pagination.Params) ([]review.Review, error)
	StatsByBook(ctx context.Context, bookID string) (review.Stats, error)
}
