package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
)

// claimsFromRequest extracts the authenticated employee and role from
// the verified token. ok is false when the claims are unusable; the
// caller is expected to answer 401.
func claimsFromRequest(r *http.Request) (employeeID string, role employee.Role, ok bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", false
	}

	employeeID, idOK := claims["employee_id"].(string)
	if !idOK || employeeID == "" {
		return "", "", false
	}

	roleStr, _ := claims["role"].(string)
	return employeeID, employee.Role(roleStr), true
}
