package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

type fakeVerifier struct {
	userID int64
	err    error
}

func (v *fakeVerifier) Verify(token string) (int64, error) {
	if v.err != nil {
		return 0, v.err
	}
	return v.userID, nil
}

type fakeResolver struct {
	actor domain.Actor
	err   error
}

func (r *fakeResolver) ActorFor(ctx context.Context, userID int64) (domain.Actor, error) {
	if r.err != nil {
		return domain.Actor{}, r.err
	}
	return r.actor, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWithActor(t *testing.T) {
	student := domain.NewStudentActor(42, "ada", []int64{5})

	tests := []struct {
		name     string
		verifier *fakeVerifier
		resolver *fakeResolver
		request  func(r *http.Request)
		want     domain.Actor
	}{
		{
			name:     "bearer token resolves the actor",
			verifier: &fakeVerifier{userID: 42},
			resolver: &fakeResolver{actor: student},
			request: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer sometoken")
			},
			want: student,
		},
		{
			name:     "session cookie resolves the actor",
			verifier: &fakeVerifier{userID: 42},
			resolver: &fakeResolver{actor: student},
			request: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sometoken"})
			},
			want: student,
		},
		{
			name:     "no credentials stays anonymous",
			verifier: &fakeVerifier{userID: 42},
			resolver: &fakeResolver{actor: student},
			request:  func(r *http.Request) {},
			want:     domain.Anonymous,
		},
		{
			name:     "invalid token stays anonymous",
			verifier: &fakeVerifier{err: errors.New("bad signature")},
			resolver: &fakeResolver{actor: student},
			request: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer garbage")
			},
			want: domain.Anonymous,
		},
		{
			name:     "resolution failure stays anonymous",
			verifier: &fakeVerifier{userID: 42},
			resolver: &fakeResolver{err: errors.New("user deleted")},
			request: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer sometoken")
			},
			want: domain.Anonymous,
		},
		{
			name:     "non-bearer authorization header falls back to the cookie",
			verifier: &fakeVerifier{userID: 42},
			resolver: &fakeResolver{actor: student},
			request: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sometoken"})
			},
			want: student,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Actor
			handler := WithActor(tt.verifier, tt.resolver, discardLogger(),
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					got = ActorFromContext(r.Context())
				}))

			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			tt.request(req)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.UserID, got.UserID)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	t.Run("anonymous gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events", nil)
		rec := httptest.NewRecorder()
		RequireAuth(next)(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events", nil)
		req = req.WithContext(SetActor(req.Context(), domain.NewStudentActor(42, "ada", nil)))
		rec := httptest.NewRecorder()
		RequireAuth(next)(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}
