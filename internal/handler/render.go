// Package handler contains the request handlers. Each action follows the
// same shape: local validation, one or more API client calls, then a
// branch on the call outcome into a re-rendered form or a redirect with a
// one-shot banner.
package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/Ruben1155/BiblioApp/internal/session"
)

// Renderer executes views with the cross-cutting data every page needs:
// the current session, queued banners and the CSRF token.
type Renderer struct {
	tmpl     *template.Template
	sessions *session.Manager
	log      *log.Logger
}

func NewRenderer(tmpl *template.Template, sessions *session.Manager, logger *log.Logger) *Renderer {
	return &Renderer{tmpl: tmpl, sessions: sessions, log: logger.With("component", "render")}
}

// Render executes the named view. The template runs into a buffer first
// so session cookie writes always precede the response body. Banners the
// handler passes under "Errors" are merged with the queued flashes.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, view string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}

	successes, errors := rn.sessions.PopFlashes(w, r)
	if extra, ok := data["Errors"].([]string); ok {
		errors = append(errors, extra...)
	}
	data["Successes"] = successes
	data["Errors"] = errors
	data["Session"] = rn.sessions.Current(r)
	data["CSRF"] = rn.sessions.CSRFToken(w, r)
	if _, ok := data["Title"]; !ok {
		data["Title"] = "BiblioApp"
	}
	if _, ok := data["FieldErrors"]; !ok {
		data["FieldErrors"] = map[string]string{}
	}

	var buf bytes.Buffer
	if err := rn.tmpl.ExecuteTemplate(&buf, view, data); err != nil {
		rn.log.Error("error renderizando vista", "view", view, "err", err)
		http.Error(w, "Ocurrió un error inesperado.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// NotFound renders the shared error view with a 404.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rn.Render(w, r, http.StatusNotFound, "error.html", map[string]any{
		"Title":     "No encontrado",
		"Message":   "El recurso solicitado no existe.",
		"RequestID": r.Header.Get("X-Request-Id"),
	})
}

// AccessDenied is the terminal view the role gate renders on denial.
func (rn *Renderer) AccessDenied() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rn.Render(w, r, http.StatusForbidden, "access_denied.html", map[string]any{
			"Title": "Acceso denegado",
		})
	})
}
