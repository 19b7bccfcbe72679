package middleware

import (
	"net/http"
)

// DemoModeMiddleware makes the API read-only. Logging in and registering
// still work so visitors can look around.
func DemoModeMiddleware(isDemo bool) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/api/auth/login":    true,
		"/api/auth/register": true,
	}

	return func(next http.Handler) http.Handler {
		if !isDemo {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet, r.Method == http.MethodHead, r.Method == http.MethodOptions:
			case r.Method == http.MethodPost && allowedPosts[r.URL.Path]:
			default:
				writeError(w, http.StatusForbidden, "demo mode: only GET requests are allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
