package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"spacex-dashboard/services"
)

const sessionCookie = "dash_session"

type ctxKey struct{}

// withSession attaches the caller's ViewController to the request context,
// issuing a new session cookie when the request has none.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var vc *services.ViewController

		if c, err := r.Cookie(sessionCookie); err == nil {
			if id, err := uuid.Parse(c.Value); err == nil {
				vc = s.sessions.Get(id)
			}
		}
		if vc == nil {
			var id uuid.UUID
			id, vc = s.sessions.New()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id.String(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, vc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func controllerFrom(r *http.Request) *services.ViewController {
	return r.Context().Value(ctxKey{}).(*services.ViewController)
}
