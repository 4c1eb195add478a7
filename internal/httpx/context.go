package httpx

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	requestIDKey contextKey = "requestID"
	loggerKey    contextKey = "logger"
)

// UserIDFrom retrieves the authenticated user ID from the request context.
func UserIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUser returns a new context carrying the authenticated user ID.
func ContextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ContextWithLogger returns a new context carrying a request-scoped logger.
func ContextWithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, entry)
}

// LoggerFrom returns the request-scoped logger, or the standard logger when
// none was attached.
func LoggerFrom(ctx context.Context) *logrus.Entry {
	if v, ok := ctx.Value(loggerKey).(*logrus.Entry); ok && v != nil {
		return v
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

const userHolderKey contextKey = "userHolder"

// userHolder lets outer middleware observe the user resolved further down.
type userHolder struct {
	userID string
}

func contextWithUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, userHolderKey, h)
}

func userHolderFrom(ctx context.Context) *userHolder {
	h, _ := ctx.Value(userHolderKey).(*userHolder)
	return h
}
