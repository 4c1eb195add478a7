package book

import (
	"errors"
	"time"

	"bookreview/internal/pagination"
	"bookreview/internal/review"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book entity. Optional fields serialize as null.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description *string   `json:"description"`
	Genre       *string   `json:"genre"`
	CoverImage  *string   `json:"coverImage"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateInput struct {
	Title       string  `json:"title" validate:"required,notblank"`
	Author      string  `json:"author" validate:"required,notblank"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	CoverImage  *string `json:"coverImage" validate:"omitempty,url"`
}

// SearchField selects the columns a search query is matched against.
type SearchField string

const (
	FieldTitle  SearchField = "title"
	FieldAuthor SearchField = "author"
	FieldAll    SearchField = "all"
)

// Filter narrows a book listing. Every non-empty field is a
// case-insensitive substring match; they are combined with AND.
type Filter struct {
	Author string
	Genre  string
	Query  string
	Field  SearchField
}

// SearchParams is the query string of GET /api/books/search.
type SearchParams struct {
	Query string      `json:"query" validate:"required,notblank"`
	Type  SearchField `json:"type" validate:"oneof=title author all"`
}

// Page is one page of books with the total matching the filter.
type Page struct {
	Books []Book
	Total int
	Meta  pagination.Meta
}

// Detail is a book with its review aggregates.
type Detail struct {
	Book
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// DetailPage is a book together with one page of its reviews.
type DetailPage struct {
	Book    Detail
	Reviews []review.Review
	Meta    pagination.Meta
}
