package book

import (
	"net/http"
	"strings"

	"bookreview/internal/httpx"
	"bookreview/internal/pagination"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type listPagination struct {
	TotalBooks int `json:"totalBooks"`
	pagination.Meta
}

type reviewPagination struct {
	TotalReviews int `json:"totalReviews"`
	pagination.Meta
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.BindJSON(r, &in); err != nil {
		httpx.JSONError(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, map[string]any{"book": b})
}

// List handles GET /api/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	p, err := httpx.ParsePagination(query)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}

	filter := Filter{
		Author: strings.TrimSpace(query.Get("author")),
		Genre:  strings.TrimSpace(query.Get("genre")),
	}
	page, err := h.service.List(r.Context(), filter, p)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	writePage(w, page)
}

// Search handles GET /api/books/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := SearchParams{
		Query: strings.TrimSpace(query.Get("query")),
		Type:  SearchField(strings.TrimSpace(query.Get("type"))),
	}
	if params.Type == "" {
		params.Type = FieldAll
	}
	if err := httpx.Validate(params); err != nil {
		httpx.JSONError(w, r, err)
		return
	}

	p, err := httpx.ParsePagination(query)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}

	page, err := h.service.Search(r.Context(), params, p)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	writePage(w, page)
}

func writePage(w http.ResponseWriter, page Page) {
	httpx.JSONList(w,
		map[string]any{"books": page.Books},
		len(page.Books),
		listPagination{TotalBooks: page.Total, Meta: page.Meta},
	)
}

// GetByID handles GET /api/books/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := httpx.ParsePagination(r.URL.Query())
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}

	detail, err := h.service.GetByID(r.Context(), r.PathValue("id"), p)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, map[string]any{
		"book":    detail.Book,
		"reviews": detail.Reviews,
		"pagination": reviewPagination{
			TotalReviews: detail.Book.TotalReviews,
			Meta:         detail.Meta,
		},
	})
}
