package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// SessionCookieName is the cookie carrying the session JWT.
const SessionCookieName = "campus_session"

// SetActor returns a context with the actor set. Used by auth middleware and tests.
func SetActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the request actor. Requests that never passed
// through WithActor resolve to the anonymous actor.
func ActorFromContext(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorKey).(domain.Actor); ok {
		return actor
	}
	return domain.Anonymous
}

// ActorResolver rebuilds a full Actor (staff flag, board memberships) from a
// verified user ID.
type ActorResolver interface {
	ActorFor(ctx context.Context, userID int64) (domain.Actor, error)
}

// sessionToken extracts the session token from the Authorization header
// (Bearer) or, failing that, the session cookie. Non-Bearer Authorization
// headers (a proxy's Basic credentials, for instance) are not ours and do
// not block the cookie.
func sessionToken(r *http.Request) string {
	const prefix = "Bearer "
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// WithActor resolves the request actor from the session token and stores it
// in the context. Missing or invalid tokens resolve to the anonymous actor;
// individual routes decide whether authentication is required.
func WithActor(verifier domain.TokenVerifier, resolver ActorResolver, logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.Anonymous
		if token := sessionToken(r); token != "" {
			if userID, err := verifier.Verify(token); err == nil {
				resolved, err := resolver.ActorFor(r.Context(), userID)
				if err == nil {
					actor = resolved
				} else {
					logger.WarnContext(r.Context(), "actor resolution failed", "user_id", userID, "err", err)
				}
			}
		}
		next.ServeHTTP(w, r.WithContext(SetActor(r.Context(), actor)))
	})
}

// RequireAuth returns a wrapper that rejects anonymous requests with 401.
// Apply to routes whose operations require a logged-in user.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ActorFromContext(r.Context()).IsAuthenticated() {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}
