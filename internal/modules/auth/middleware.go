package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/georgemunganga/kuber-inventory/internal/httpx"
	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/georgemunganga/kuber-inventory/internal/modules/admin"
)

type ctxKey struct{}

// WithAdmin returns a context carrying the authenticated admin.
func WithAdmin(ctx context.Context, a *admin.Admin) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// AdminFrom returns the admin stored by Middleware.
func AdminFrom(ctx context.Context) (*admin.Admin, bool) {
	a, ok := ctx.Value(ctxKey{}).(*admin.Admin)
	return a, ok && a != nil
}

// ActorFrom returns the identity mutations are attributed to.
func ActorFrom(ctx context.Context) (activity.Actor, bool) {
	a, ok := AdminFrom(ctx)
	if !ok {
		return activity.Actor{}, false
	}
	return activity.Actor{ID: a.ID, Email: a.Email}, true
}

// Middleware rejects requests without a valid bearer token.
func Middleware(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.Error(w, http.StatusUnauthorized, "authorization header is required")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				httpx.Error(w, http.StatusUnauthorized, "authorization header must be 'Bearer <token>'")
				return
			}

			a, err := svc.Authenticate(r.Context(), token)
			if errors.Is(err, ErrInvalidToken) {
				httpx.Error(w, http.StatusUnauthorized, err.Error())
				return
			}
			if err != nil {
				log.Printf("auth: authenticate: %v", err)
				httpx.Error(w, http.StatusInternalServerError, "internal error")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), a)))
		})
	}
}
