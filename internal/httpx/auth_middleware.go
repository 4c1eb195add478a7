package httpx

import (
	"net/http"
)

// Authenticator resolves the caller identity from an Authorization header.
type Authenticator interface {
	Authenticate(authorizationHeader string) (userID string, err error)
}

// AuthMiddleware rejects requests without valid bearer credentials and
// attaches the caller's user ID to the request context.
func AuthMiddleware(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := authenticator.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				JSONError(w, r, err)
				return
			}

			if h := userHolderFrom(r.Context()); h != nil {
				h.userID = userID
			}
			ctx := ContextWithUser(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
