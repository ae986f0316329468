package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Ruben1155/BiblioApp/internal/apiclient"
	"github.com/Ruben1155/BiblioApp/internal/entity"
	"github.com/Ruben1155/BiblioApp/internal/export"
	"github.com/Ruben1155/BiblioApp/internal/session"
)

// Users serves the user management views. The whole group sits behind the
// administrator gate.
type Users struct {
	users    *apiclient.UserService
	sessions *session.Manager
	render   *Renderer
	log      *log.Logger
}

func NewUsers(users *apiclient.UserService, sessions *session.Manager, render *Renderer, logger *log.Logger) *Users {
	return &Users{users: users, sessions: sessions, render: render, log: logger.With("handler", "users")}
}

func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Usuarios"}

	result := h.users.List(r.Context())
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		data["Users"] = result.Value
	default:
		data["Users"] = []entity.User{}
		data["Errors"] = []string{"No se pudo cargar la lista de usuarios."}
	}

	h.render.Render(w, r, http.StatusOK, "users_list.html", data)
}

func (h *Users) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	result := h.users.GetByID(r.Context(), id)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.render.Render(w, r, http.StatusOK, "user_detail.html", map[string]any{
			"Title": result.Value.FullName(),
			"User":  result.Value,
		})
	case apiclient.OutcomeNotFound:
		h.render.NotFound(w, r)
	default:
		h.sessions.Error(w, r, "Error al cargar los detalles del usuario.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
	}
}

func (h *Users) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "user_form.html", map[string]any{
		"Title":  "Agregar usuario",
		"Action": "/users/new",
		"User":   entity.User{},
	})
}

// Create registers a user from the admin screen. No password travels
// here; the API assigns a default one.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	user := parseUserForm(r)
	h.log.Info("creando usuario", "correo", user.Correo)

	renderForm := func(fieldErrors map[string]string, formErrors ...string) {
		h.render.Render(w, r, http.StatusOK, "user_form.html", map[string]any{
			"Title":       "Agregar usuario",
			"Action":      "/users/new",
			"User":        user,
			"FieldErrors": fieldErrors,
			"FormErrors":  formErrors,
		})
	}

	if problems := user.Validate(); len(problems) > 0 {
		renderForm(problems)
		return
	}

	result := h.users.Create(r.Context(), user)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.sessions.Success(w, r, "Usuario agregado correctamente.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
	case apiclient.OutcomeConflict, apiclient.OutcomeValidationRejected:
		renderForm(nil, result.Message)
	case apiclient.OutcomeConnectivityFailure:
		renderForm(nil, "No se pudo conectar con la API para crear el usuario.")
	default:
		renderForm(nil, "Ocurrió un error inesperado al crear el usuario.")
	}
}

func (h *Users) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	result := h.users.GetByID(r.Context(), id)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.render.Render(w, r, http.StatusOK, "user_form.html", map[string]any{
			"Title":  "Editar usuario",
			"Action": "/users/" + strconv.Itoa(id) + "/edit",
			"User":   result.Value,
		})
	case apiclient.OutcomeNotFound:
		h.render.NotFound(w, r)
	default:
		h.sessions.Error(w, r, "Error al cargar los datos del usuario para editar.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
	}
}

func (h *Users) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	user := parseUserForm(r)
	if user.ID != id {
		h.log.Warn("id de ruta no coincide con id de formulario", "path_id", id, "form_id", user.ID)
		http.Error(w, "Inconsistencia en el ID del usuario.", http.StatusBadRequest)
		return
	}

	renderForm := func(fieldErrors map[string]string, formErrors ...string) {
		h.render.Render(w, r, http.StatusOK, "user_form.html", map[string]any{
			"Title":       "Editar usuario",
			"Action":      "/users/" + strconv.Itoa(id) + "/edit",
			"User":        user,
			"FieldErrors": fieldErrors,
			"FormErrors":  formErrors,
		})
	}

	if problems := user.Validate(); len(problems) > 0 {
		renderForm(problems)
		return
	}

	result := h.users.Update(r.Context(), id, user)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.sessions.Success(w, r, "Usuario actualizado correctamente.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
	case apiclient.OutcomeNotFound:
		renderForm(nil, "No se pudo actualizar el usuario. Puede que no exista o no haya cambios.")
	case apiclient.OutcomeConflict, apiclient.OutcomeValidationRejected:
		renderForm(nil, result.Message)
	case apiclient.OutcomeConnectivityFailure:
		renderForm(nil, "No se pudo conectar con la API para actualizar el usuario.")
	default:
		renderForm(nil, "Ocurrió un error inesperado al actualizar el usuario.")
	}
}

func (h *Users) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	result := h.users.GetByID(r.Context(), id)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.render.Render(w, r, http.StatusOK, "user_delete.html", map[string]any{
			"Title": "Eliminar usuario",
			"User":  result.Value,
		})
	case apiclient.OutcomeNotFound:
		h.render.NotFound(w, r)
	default:
		h.sessions.Error(w, r, "Error al cargar los datos del usuario para eliminar.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
	}
}

func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	result := h.users.Delete(r.Context(), id)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.sessions.Success(w, r, "Usuario eliminado correctamente.")
	case apiclient.OutcomeConflict:
		msg := result.Message
		if msg == "" {
			msg = "No se pudo eliminar el usuario. Puede que tenga préstamos asociados."
		}
		h.sessions.Error(w, r, msg)
	case apiclient.OutcomeNotFound:
		h.sessions.Error(w, r, "No se pudo eliminar el usuario. Puede que no exista.")
	default:
		h.sessions.Error(w, r, "Ocurrió un error inesperado al eliminar el usuario.")
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *Users) ExportPDF(w http.ResponseWriter, r *http.Request) {
	result := h.users.List(r.Context())
	if !result.OK() {
		h.sessions.Error(w, r, "No se pudo exportar la lista de usuarios.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	data, err := export.UsersPDF(result.Value)
	if err != nil {
		h.log.Error("error generando PDF de usuarios", "err", err)
		http.Error(w, "Ocurrió un error generando el documento.", http.StatusInternalServerError)
		return
	}
	servePDF(w, "Usuarios", data)
}

func (h *Users) ExportExcel(w http.ResponseWriter, r *http.Request) {
	result := h.users.List(r.Context())
	if !result.OK() {
		h.sessions.Error(w, r, "No se pudo exportar la lista de usuarios.")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	data, err := export.UsersExcel(result.Value)
	if err != nil {
		h.log.Error("error generando Excel de usuarios", "err", err)
		http.Error(w, "Ocurrió un error generando el documento.", http.StatusInternalServerError)
		return
	}
	serveExcel(w, "Usuarios", data)
}

func parseUserForm(r *http.Request) entity.User {
	id, _ := strconv.Atoi(r.PostFormValue("id"))

	return entity.User{
		ID:          id,
		Nombre:      strings.TrimSpace(r.PostFormValue("nombre")),
		Apellido:    strings.TrimSpace(r.PostFormValue("apellido")),
		Correo:      strings.TrimSpace(r.PostFormValue("correo")),
		Telefono:    strings.TrimSpace(r.PostFormValue("telefono")),
		TipoUsuario: r.PostFormValue("tipoUsuario"),
	}
}
