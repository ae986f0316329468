package web

import (
	"net/http"
	"strings"

	"github.com/Ruben1155/BiblioApp/internal/session"
)

// AccessDeniedMessage is the one-shot banner queued when the gate denies.
const AccessDeniedMessage = "Acceso denegado. Se requiere rol de Administrador."

// RequireRole gates a set of routes behind a session role. The decision
// is taken fresh on every request from the current session content; a
// missing session or role means denied, never an error. On denial the
// wrapped handler does not run: the banner is queued and the denied view
// is rendered instead.
func RequireRole(sessions *session.Manager, role string, denied http.Handler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current := sessions.Current(r)
			if !strings.EqualFold(current.Role, role) {
				sessions.Error(w, r, AccessDeniedMessage)
				denied.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
