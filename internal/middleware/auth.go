package middleware

import (
	"net/http"
	"strings"

	"github.com/Xek-YP/ya-note/internal/auth"
	"github.com/Xek-YP/ya-note/internal/store"
)

// LoginPath is where anonymous requests for protected pages are sent.
const LoginPath = "/auth/login/"

// Auth resolves the session cookie to a user and adds it to the request
// context. Anonymous requests for protected pages are redirected to the
// login page with a next parameter preserving the original URL.
func Auth(sessions *auth.Sessions, st store.Store, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessions.UserIDFromRequest(r)
		if ok {
			if user, err := st.GetUserByID(userID); err == nil {
				next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
				return
			}
		}

		if isPublicEndpoint(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		// Slashes stay literal in next so the round trip lands back on
		// the originally requested page.
		redirect := LoginPath + "?next=" + r.URL.RequestURI()
		http.Redirect(w, r, redirect, http.StatusFound)
	})
}

func isPublicEndpoint(path string) bool {
	exactPaths := []string{"/", "/auth/login/", "/auth/logout/", "/auth/signup/"}
	for _, p := range exactPaths {
		if path == p {
			return true
		}
	}
	prefixPaths := []string{"/static/", "/mcp/"}
	for _, p := range prefixPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
