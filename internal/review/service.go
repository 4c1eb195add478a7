package review

import (
	"context"
	"errors"
	"fmt"

	"bookreview/internal/apperr"
	"bookreview/internal/pagination"
)

const (
	msgBookNotFound   = "Book not found"
	msgReviewNotFound = "Review not found"
	msgDuplicate      = "You have already reviewed this book"
	msgUpdateNotOwner = "You can only update your own reviews"
	msgDeleteNotOwner = "You can only delete your own reviews"
)

// Service provides review-related business logic.
type Service struct {
	repo  Repository
	books BookChecker
}

// NewService creates a new review service.
func NewService(repo Repository, books BookChecker) *Service {
	return &Service{repo: repo, books: books}
}

// Create stores the caller's review of a book. A user reviews a book at
// most once.
func (s *Service) Create(ctx context.Context, bookID, userID string, in CreateInput) (Review, error) {
	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return Review{}, fmt.Errorf("check book: %w", err)
	}
	if !exists {
		return Review{}, apperr.NotFound(msgBookNotFound)
	}

	reviewed, err := s.repo.ExistsForUser(ctx, bookID, userID)
	if err != nil {
		return Review{}, fmt.Errorf("check existing review: %w", err)
	}
	if reviewed {
		return Review{}, apperr.Conflict(msgDuplicate)
	}

	r := &Review{
		Content: in.Content,
		Rating:  in.Rating,
		BookID:  bookID,
		UserID:  userID,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Review{}, apperr.Conflict(msgDuplicate)
		}
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	return *r, nil
}

// Update changes content and/or rating of a review owned by userID.
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (Review, error) {
	if err := s.checkOwner(ctx, id, userID, msgUpdateNotOwner); err != nil {
		return Review{}, err
	}

	updated, err := s.repo.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Review{}, apperr.NotFound(msgReviewNotFound)
		}
		return Review{}, fmt.Errorf("update review: %w", err)
	}
	return updated, nil
}

// Delete removes a review owned by userID.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.checkOwner(ctx, id, userID, msgDeleteNotOwner); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound(msgReviewNotFound)
		}
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *Service) checkOwner(ctx context.Context, id, userID, forbidden string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound(msgReviewNotFound)
		}
		return fmt.Errorf("get review: %w", err)
	}
	if existing.UserID != userID {
		return apperr.Forbidden(forbidden)
	}
	return nil
}

// ListByBook returns one page of a book's reviews, newest first.
func (s *Service) ListByBook(ctx context.Context, bookID string, p pagination.Params) ([]Review, error) {
	reviews, err := s.repo.ListByBook(ctx, bookID, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews, nil
}

// StatsByBook returns the average rating and count over all of a book's
// reviews.
func (s *Service) StatsByBook(ctx context.Context, bookID string) (Stats, error) {
	stats, err := s.repo.StatsByBook(ctx, bookID)
	if err != nil {
		return Stats{}, fmt.Errorf("review stats: %w", err)
	}
	return stats, nil
}
