package middleware

import (
	"net/http"
	"strings"

	"github.com/Emman-24/backendFlorist/api/responses"
	pkgerrors "github.com/Emman-24/backendFlorist/pkg/errors"
	"github.com/Emman-24/backendFlorist/pkg/logger"
)

const rolePrefix = "ROLE_"

// RequireAnyRole admits callers holding at least one of roles. Roles are given
// without the ROLE_ prefix.
func RequireAnyRole(logg *logger.Logger, roles ...string) func(http.Handler) http.Handler {
	wanted := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		wanted[rolePrefix+strings.ToUpper(strings.TrimPrefix(role, rolePrefix))] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UsernameFromContext(r.Context()) == "" {
				responses.WriteError(w, r, logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required"))
				return
			}
			for _, authority := range AuthoritiesFromContext(r.Context()) {
				if _, ok := wanted[authority]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(w, r, logg, pkgerrors.New(pkgerrors.CodeForbidden, "Access denied"))
		})
	}
}
