package web

import (
	"net/http"

	"github.com/Ruben1155/BiblioApp/internal/session"
)

// CSRFField is the form field carrying the anti-forgery token.
const CSRFField = "csrf_token"

// VerifyCSRF rejects mutating requests whose form token does not match
// the session-bound one. Safe methods pass through untouched.
func VerifyCSRF(sessions *session.Manager) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if err := r.ParseForm(); err != nil {
				http.Error(w, "Ocurrió un error al procesar el formulario.", http.StatusBadRequest)
				return
			}
			if !sessions.VerifyCSRF(r, r.PostFormValue(CSRFField)) {
				http.Error(w, "Token de verificación inválido.", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
