package review

import (
	"net/http"

	"bookreview/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Create handles POST /api/books/{id}/reviews
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.BindJSON(r, &in); err != nil {
		httpx.JSONError(w, r, err)
		return
	}

	review, err := h.service.Create(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r), in)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, map[string]any{"review": review})
}

// Update handles PUT /api/reviews/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := httpx.BindJSON(r, &in); err != nil {
		httpx.JSONError(w, r, err)
		return
	}

	review, err := h.service.Update(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r), in)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, map[string]any{"review": review})
}

// Delete handles DELETE /api/reviews/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r)); err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
