package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/auth"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/handler/http/response"
)

// RequireCapability gates a route on the capability table. Roles are
// never compared directly; granting a role a new capability is an edit
// to the table, not to routes.
func RequireCapability(c auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", c))
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", c))
				return
			}

			if !auth.Can(employee.Role(roleStr), c) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", c))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
