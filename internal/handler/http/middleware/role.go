package middleware

import (
	"net/http"

	"github.com/chapi1234/gammoda-attendance-go/internal/handler/http/response"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// RequireHR gates HR-only operations: listing the whole day and correcting
// records. Check-in, check-out and history stay self-service.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "HR access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || jwt.Role(role) != jwt.RoleHR {
			response.Forbidden(w, "HR access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
