package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
)

// CSRF token transport names (double-submit cookie pattern).
const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRF enforces the double-submit cookie check on state-changing requests.
// Safe methods pass through, as do requests authenticated with a Bearer
// header (no cookie, no cross-site exposure). Everything else must send the
// csrf_token cookie value back in the X-CSRF-Token header.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		cookie, err := r.Cookie(CSRFCookieName)
		if err != nil || cookie.Value == "" {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "missing CSRF token")
			return
		}
		header := r.Header.Get(CSRFHeaderName)
		if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(header)) != 1 {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "invalid CSRF token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
