package handler

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Ruben1155/BiblioApp/internal/apiclient"
	"github.com/Ruben1155/BiblioApp/internal/entity"
	"github.com/Ruben1155/BiblioApp/internal/session"
)

// Home serves login, logout and the public registration form.
type Home struct {
	auth     *apiclient.AuthService
	users    *apiclient.UserService
	sessions *session.Manager
	render   *Renderer
	log      *log.Logger
}

func NewHome(auth *apiclient.AuthService, users *apiclient.UserService, sessions *session.Manager, render *Renderer, logger *log.Logger) *Home {
	return &Home{auth: auth, users: users, sessions: sessions, render: render, log: logger.With("handler", "home")}
}

// afterLogin picks the landing page for a role: administrators get the
// dashboard, everyone else the book listing.
func afterLogin(role string) string {
	if strings.EqualFold(role, session.AdminRole) {
		return "/dashboard"
	}
	return "/books"
}

// LoginPage shows the login form, or skips it for a live session.
func (h *Home) LoginPage(w http.ResponseWriter, r *http.Request) {
	current := h.sessions.Current(r)
	if current.LoggedIn() {
		http.Redirect(w, r, afterLogin(current.Role), http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, http.StatusOK, "login.html", map[string]any{
		"Title": "Iniciar sesión",
		"Form":  entity.Credentials{},
	})
}

// Login validates the submitted credentials against the remote API and
// fills the session on success.
func (h *Home) Login(w http.ResponseWriter, r *http.Request) {
	creds := entity.Credentials{
		Correo: strings.TrimSpace(r.PostFormValue("correo")),
		Clave:  r.PostFormValue("clave"),
	}
	h.log.Info("intento de login", "correo", creds.Correo)

	renderForm := func(fieldErrors map[string]string, formErrors ...string) {
		h.render.Render(w, r, http.StatusOK, "login.html", map[string]any{
			"Title":       "Iniciar sesión",
			"Form":        creds,
			"FieldErrors": fieldErrors,
			"Errors":      formErrors,
		})
	}

	if problems := creds.Validate(); len(problems) > 0 {
		renderForm(problems)
		return
	}

	result := h.auth.Validate(r.Context(), creds)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		user := result.Value
		if err := h.sessions.SignIn(w, r, user.ID, user.FullName(), user.TipoUsuario); err != nil {
			h.log.Error("error guardando sesión", "correo", creds.Correo, "err", err)
			renderForm(nil, "Ocurrió un error inesperado. Intente de nuevo.")
			return
		}
		h.log.Info("login exitoso", "user_id", user.ID, "rol", user.TipoUsuario)
		http.Redirect(w, r, afterLogin(user.TipoUsuario), http.StatusSeeOther)
	case apiclient.OutcomeValidationRejected, apiclient.OutcomeNotFound:
		h.log.Warn("login fallido", "correo", creds.Correo)
		renderForm(nil, "Correo o clave incorrectos.")
	case apiclient.OutcomeConnectivityFailure:
		renderForm(nil, "No se pudo conectar con el servicio de autenticación. Intente más tarde.")
	default:
		renderForm(nil, "Ocurrió un error inesperado. Intente de nuevo.")
	}
}

// Logout clears the whole session and returns to the login page.
func (h *Home) Logout(w http.ResponseWriter, r *http.Request) {
	current := h.sessions.Current(r)
	h.log.Info("logout", "user_id", current.UserID)
	h.sessions.Clear(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage shows the public sign-up form.
func (h *Home) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "register.html", map[string]any{
		"Title": "Registro",
		"Form":  entity.Registration{},
	})
}

// Register creates the user through the API. A conflict (correo already
// taken) re-renders the form with the remote detail message.
func (h *Home) Register(w http.ResponseWriter, r *http.Request) {
	form := entity.Registration{
		Nombre:         strings.TrimSpace(r.PostFormValue("nombre")),
		Apellido:       strings.TrimSpace(r.PostFormValue("apellido")),
		Correo:         strings.TrimSpace(r.PostFormValue("correo")),
		Telefono:       strings.TrimSpace(r.PostFormValue("telefono")),
		TipoUsuario:    r.PostFormValue("tipoUsuario"),
		Clave:          r.PostFormValue("clave"),
		ConfirmarClave: r.PostFormValue("confirmarClave"),
	}
	h.log.Info("intento de registro", "correo", form.Correo)

	renderForm := func(fieldErrors map[string]string, formErrors ...string) {
		h.render.Render(w, r, http.StatusOK, "register.html", map[string]any{
			"Title":       "Registro",
			"Form":        form,
			"FieldErrors": fieldErrors,
			"Errors":      formErrors,
		})
	}

	if problems := form.Validate(); len(problems) > 0 {
		renderForm(problems)
		return
	}

	result := h.users.Create(r.Context(), form.User())
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.log.Info("registro exitoso", "correo", form.Correo)
		h.sessions.Success(w, r, "¡Registro exitoso! Ahora puedes iniciar sesión.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case apiclient.OutcomeConflict, apiclient.OutcomeValidationRejected:
		renderForm(nil, result.Message)
	case apiclient.OutcomeConnectivityFailure:
		renderForm(nil, "No se pudo conectar con la API para crear el usuario.")
	default:
		renderForm(nil, "Ocurrió un error inesperado durante el registro.")
	}
}
