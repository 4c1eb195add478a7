package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a validated page request.
type Params struct {
	Page  int `json:"page" validate:"gte=1"`
	Limit int `json:"limit" validate:"gte=1,lte=100"`
}

// Default returns the first page with the default size.
func Default() Params {
	return Params{Page: DefaultPage, Limit: DefaultLimit}
}

// Offset is the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes where a page sits in the full result set. It is embedded
// next to a resource-specific total (totalBooks, totalReviews).
type Meta struct {
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewMeta computes page metadata for total matching rows.
func NewMeta(total int, p Params) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit // ceiling division
	}
	return Meta{
		TotalPages:  totalPages,
		CurrentPage: p.Page,
		Limit:       p.Limit,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1,
	}
}
