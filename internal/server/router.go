// Package server wires the HTTP handlers into a router and runs it.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"bookreview/internal/auth"
	"bookreview/internal/book"
	"bookreview/internal/httpx"
	"bookreview/internal/review"
)

const (
	apiBasePath     = "/api"
	authBasePath    = "/auth"
	booksBasePath   = "/books"
	reviewsBasePath = "/reviews"
	paramID         = "id"
)

const readyTimeout = 500 * time.Millisecond

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the resource handlers mounted under /api.
type Handlers struct {
	Auth   *auth.HTTPHandler
	Book   *book.HTTPHandler
	Review *review.HTTPHandler
}

// Options configures the middleware chain.
type Options struct {
	Logger         *logrus.Logger
	Authenticator  httpx.Authenticator
	DB             Pinger
	AllowedOrigins []string
	MaxBodyBytes   int64
	EnableHSTS     bool
	// RateLimit is optional; nil disables throttling.
	RateLimit *httpx.RateLimitMiddleware
}

// NewRouter builds the application router.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware(opts.Logger))
	r.Use(httpx.AccessLogMiddleware)
	r.Use(httpx.RecoveryMiddleware)
	r.Use(httpx.SecurityHeadersMiddleware(opts.EnableHSTS))
	r.Use(httpx.CORSMiddleware(opts.AllowedOrigins))
	r.Use(httpx.RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	if opts.RateLimit != nil {
		r.Use(opts.RateLimit.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONFail(w, http.StatusNotFound, fmt.Sprintf("Can't find %s on this server", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONFail(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed on %s", r.Method, r.URL.Path))
	})

	r.Get("/health", handleHealth)
	r.Get("/readyz", handleReady(opts.DB))

	requireAuth := httpx.AuthMiddleware(opts.Authenticator)

	r.Route(apiBasePath, func(r chi.Router) {
		r.Route(authBasePath, func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
			r.With(requireAuth).Get("/me", h.Auth.Me)
		})

		r.Route(booksBasePath, func(r chi.Router) {
			r.Get("/", h.Book.List)
			r.With(requireAuth).Post("/", h.Book.Create)
			r.Get("/search", h.Book.Search)
			r.Get(pathWithParam(paramID), h.Book.GetByID)
			r.With(requireAuth).Post(pathWithParam(paramID)+reviewsBasePath, h.Review.Create)
		})

		r.Route(reviewsBasePath, func(r chi.Router) {
			r.Use(requireAuth)
			r.Put(pathWithParam(paramID), h.Review.Update)
			r.Delete(pathWithParam(paramID), h.Review.Delete)
		})
	})

	return r
}

func pathWithParam(name string) string {
	return "/{" + name + "}"
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if db == nil || db.Ping(ctx) != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, httpx.ErrorResponse{
				Status:  "error",
				Message: "Database not ready",
			})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
