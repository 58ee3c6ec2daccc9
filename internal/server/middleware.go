package server

import (
	"crypto/subtle"
	"net/http"
)

// AdminTokenHeader carries the shared admin secret for management
// endpoints.
const AdminTokenHeader = "X-Admin-Token"

// adminOnly rejects requests whose admin token header does not match the
// configured token. An empty configured token disables the endpoints
// entirely rather than leaving them open.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminToken == "" {
			s.writeError(w, http.StatusServiceUnavailable, "Admin endpoints are not configured")
			return
		}

		token := r.Header.Get(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "Invalid admin token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
