package book

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"bookreview/internal/apperr"
	"bookreview/internal/pagination"
	"bookreview/internal/review"
)

// Service provides book-related business logic.
type Service struct {
	repo    Repository
	reviews ReviewReader
}

// NewService creates a new book service.
func NewService(repo Repository, reviews ReviewReader) *Service {
	return &Service{repo: repo, reviews: reviews}
}

// Create stores a new book.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	b := &Book{
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Genre:       in.Genre,
		CoverImage:  in.CoverImage,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Book{}, fmt.Errorf("create book: %w", err)
	}
	return *b, nil
}

// List returns one page of books matching f, newest first. The page and
// the total are fetched concurrently.
func (s *Service) List(ctx context.Context, f Filter, p pagination.Params) (Page, error) {
	var (
		books []Book
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = s.repo.List(gctx, f, p.Limit, p.Offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return Page{}, fmt.Errorf("list books: %w", err)
	}

	if books == nil {
		books = []Book{}
	}
	return Page{Books: books, Total: total, Meta: pagination.NewMeta(total, p)}, nil
}

// Search matches query against the title, the author, or either.
func (s *Service) Search(ctx context.Context, params SearchParams, p pagination.Params) (Page, error) {
	return s.List(ctx, Filter{Query: params.Query, Field: params.Type}, p)
}

// GetByID returns a book, its review aggregates and one page of its
// reviews. Reviews are only read once the book is known to exist.
func (s *Service) GetByID(ctx context.Context, id string, p pagination.Params) (DetailPage, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return DetailPage{}, apperr.NotFound("Book not found")
		}
		return DetailPage{}, fmt.Errorf("get book: %w", err)
	}

	var (
		reviews []review.Review
		stats   review.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reviews, err = s.reviews.ListByBook(gctx, id, p)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.reviews.StatsByBook(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return DetailPage{}, err
	}

	if reviews == nil {
		reviews = []review.Review{}
	}
	return DetailPage{
		Book: Detail{
			Book:          b,
			AverageRating: stats.AverageRating,
			TotalReviews:  stats.TotalReviews,
		},
		Reviews: reviews,
		Meta:    pagination.NewMeta(stats.TotalReviews, p),
	}, nil
}
