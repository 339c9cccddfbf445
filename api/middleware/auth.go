package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Emman-24/backendFlorist/api/responses"
	"github.com/Emman-24/backendFlorist/internal/users"
	pkgAuth "github.com/Emman-24/backendFlorist/pkg/auth"
	"github.com/Emman-24/backendFlorist/pkg/db/models"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

const bearerPrefix = "Bearer "

// TokenVerifier is the subset of the token service the pipeline needs.
type TokenVerifier interface {
	ExtractSubject(token string) (string, error)
	IsValid(token string, identity pkgAuth.Identity) bool
}

type UserLoader interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticate resolves a bearer token into an authenticated caller. Requests outside
// /api/, the auth endpoints, the API health check and requests without a bearer header
// pass through unauthenticated.
func Authenticate(tokens TokenVerifier, loader UserLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypassAuth(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}
			token := strings.TrimSpace(header[len(bearerPrefix):])

			username, err := tokens.ExtractSubject(token)
			if err != nil {
				switch {
				case errors.Is(err, pkgAuth.ErrTokenExpired):
					rejectAuth(w, r, logg, err, "Token expired")
				case errors.Is(err, pkgAuth.ErrTokenMalformed):
					rejectAuth(w, r, logg, err, "Invalid token")
				default:
					rejectAuth(w, r, logg, err, "Authentication failed")
				}
				return
			}

			user, err := loader.FindByUsername(r.Context(), username)
			if err != nil {
				rejectAuth(w, r, logg, err, "Authentication failed")
				return
			}
			identity := users.NewIdentity(user)
			if !tokens.IsValid(token, identity) {
				rejectAuth(w, r, logg, errors.New("token does not match identity"), "Authentication failed")
				return
			}

			authorities := identity.Authorities()
			ctx := WithIdentity(r.Context(), user.ID, identity.Username(), authorities)
			if logg != nil {
				ctx = logg.WithUserID(ctx, strconv.FormatInt(user.ID, 10))
				ctx = logg.WithActorRole(ctx, strings.Join(authorities, ","))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bypassAuth(path string) bool {
	if !strings.HasPrefix(path, "/api/") {
		return true
	}
	if strings.HasPrefix(path, "/api/auth/") {
		return true
	}
	return path == "/api/health" || strings.HasPrefix(path, "/api/health/")
}

// rejectAuth logs the cause server side and answers with a fixed client message.
func rejectAuth(w http.ResponseWriter, r *http.Request, logg *logger.Logger, cause error, message string) {
	if logg != nil {
		ctx := logg.WithFields(r.Context(), map[string]any{
			"reason": message,
			"cause":  cause.Error(),
		})
		logg.Warn(ctx, "auth.failed")
	}
	responses.WriteError(w, r, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, message))
}
