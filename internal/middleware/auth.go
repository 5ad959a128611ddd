package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/RouqX7/AthleteConnect/internal/auth"
	"github.com/RouqX7/AthleteConnect/internal/response"
)

type contextKey string

const userIDKey contextKey = "userID"

// UnprotectedRoutes can be reached without a bearer token.
var UnprotectedRoutes = map[string]bool{
	"/health":   true,
	"/metrics":  true,
	"/register": true,
	"/login":    true,
}

// Authenticator resolves bearer tokens to the acting uid and stores it in
// the request context for downstream handlers.
type Authenticator struct {
	provider auth.Provider
	logger   *zap.Logger
}

func NewAuthenticator(provider auth.Provider, logger *zap.Logger) *Authenticator {
	return &Authenticator{provider: provider, logger: logger}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UnprotectedRoutes[r.URL.Path] || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token := BearerToken(r)
		if token == "" {
			response.WriteFail(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		uid, err := a.provider.VerifyToken(r.Context(), token)
		if err != nil {
			a.logger.Debug("token rejected", zap.String("path", r.URL.Path), zap.Error(err))
			response.WriteFail(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
	})
}

// WithUserID stores the acting uid in ctx the way the middleware does.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

// BearerToken extracts the token from the Authorization header, with or
// without the Bearer prefix.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

// UserID returns the authenticated uid stored by the middleware, or "".
func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey).(string)
	return uid
}
