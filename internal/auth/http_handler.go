package auth

import (
	"net/http"
	"strings"

	"bookreview/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Signup handles POST /api/auth/signup
// @Summary Register a new user
// @Description Create an account and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupInput true "Signup request"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/auth/signup [post]
func (h *HTTPHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := httpx.Validate(req); err != nil {
		httpx.JSONError(w, r, err)
		return
	}

	session, err := h.service.Signup(r.Context(), req)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, session)
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Check credentials and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login request"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/auth/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginInput
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := httpx.Validate(req); err != nil {
		httpx.JSONError(w, r, err)
		return
	}

	session, err := h.service.Login(r.Context(), req)
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, session)
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/auth/me [get]
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Me(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		httpx.JSONError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, map[string]any{"user": u})
}
