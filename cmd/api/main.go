// Command api serves the book review REST API.
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"bookreview/internal/auth"
	"bookreview/internal/book"
	"bookreview/internal/config"
	"bookreview/internal/httpx"
	"bookreview/internal/logging"
	"bookreview/internal/platform/crypto"
	"bookreview/internal/platform/postgres"
	"bookreview/internal/review"
	"bookreview/internal/server"
	"bookreview/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Open(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection OK")

	if cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			logger.Fatalf("migrate: %v", err)
		}
		logger.WithField("applied", applied).Info("migrations up to date")
	}

	timeout := cfg.Database.QueryTimeout
	bookRepo := book.NewPostgresRepo(pool, timeout)

	userService := user.NewService(user.NewPostgresRepo(pool, timeout))
	authService := auth.NewService(userService, crypto.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL))
	// Reviews only need to know a book exists, so they talk to the repository
	// and the book service can depend on the review service.
	reviewService := review.NewService(review.NewPostgresRepo(pool, timeout), bookRepo)
	bookService := book.NewService(bookRepo, reviewService)

	opts := server.Options{
		Logger:         logger,
		Authenticator:  authService,
		DB:             pool,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		EnableHSTS:     cfg.Server.EnableHSTS,
	}
	if cfg.RateLimit.RPS > 0 {
		opts.RateLimit = httpx.NewRateLimitMiddleware(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
	}

	router := server.NewRouter(server.Handlers{
		Auth:   auth.NewHTTPHandler(authService),
		Book:   book.NewHTTPHandler(bookService),
		Review: review.NewHTTPHandler(reviewService),
	}, opts)

	srv := server.New(cfg, router)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatalf("listen: %v", err)
	}

	if err := server.Run(ctx, srv, ln, cfg.Server.ShutdownTimeout, logger); err != nil {
		logger.Fatalf("server error: %v", err)
	}
	logger.Info("bye")
}
