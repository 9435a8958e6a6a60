package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/facekeep/timekeep-backend-go/internal/domain/employee"
	"github.com/facekeep/timekeep-backend-go/internal/handler/http/response"
)

// RequireManager requires manager or hr role. These are the roles that may
// correct logs, manage leave markers, edit the directory and run exports.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Manager or HR access required")
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Manager or HR access required")
			return
		}

		role, ok := employee.ParseRole(roleStr)
		if !ok || !role.CanManageTimekeeping() {
			response.Forbidden(w, "Manager or HR access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
