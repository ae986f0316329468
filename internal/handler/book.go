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

// Books serves the book listing, CRUD forms and exports.
type Books struct {
	books    *apiclient.BookService
	sessions *session.Manager
	render   *Renderer
	log      *log.Logger
}

func NewBooks(books *apiclient.BookService, sessions *session.Manager, render *Renderer, logger *log.Logger) *Books {
	return &Books{books: books, sessions: sessions, render: render, log: logger.With("handler", "books")}
}

// List shows the book table with optional title/author filters. The
// submitted filter values are echoed back into the search form. A failed
// fetch degrades to an empty table with an error banner.
func (h *Books) List(w http.ResponseWriter, r *http.Request) {
	titulo := r.URL.Query().Get("tituloFilter")
	autor := r.URL.Query().Get("autorFilter")

	data := map[string]any{
		"Title":        "Libros",
		"TituloFilter": titulo,
		"AutorFilter":  autor,
	}

	result := h.books.List(r.Context(), titulo, autor)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		data["Books"] = result.Value
	default:
		data["Books"] = []entity.Book{}
		data["Errors"] = []string{"No se pudo cargar la lista de libros."}
	}

	h.render.Render(w, r, http.StatusOK, "books_list.html", data)
}

func (h *Books) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	result := h.books.GetByID(r.Context(), id)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.render.Render(w, r, http.StatusOK, "book_detail.html", map[string]any{
			"Title": result.Value.Titulo,
			"Book":  result.Value,
		})
	case apiclient.OutcomeNotFound:
		h.render.NotFound(w, r)
	default:
		h.sessions.Error(w, r, "Error al cargar los detalles del libro.")
		http.Redirect(w, r, "/books", http.StatusSeeOther)
	}
}

func (h *Books) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, http.StatusOK, "book_form.html", map[string]any{
		"Title":  "Agregar libro",
		"Action": "/books/new",
		"Book":   entity.Book{},
	})
}

func (h *Books) Create(w http.ResponseWriter, r *http.Request) {
	book := parseBookForm(r)
	h.log.Info("creando libro", "titulo", book.Titulo)

	renderForm := func(fieldErrors map[string]string, formErrors ...string) {
		h.render.Render(w, r, http.StatusOK, "book_form.html", map[string]any{
			"Title":       "Agregar libro",
			"Action":      "/books/new",
			"Book":        book,
			"FieldErrors": fieldErrors,
			"FormErrors":  formErrors,
		})
	}

	if problems := book.Validate(); len(problems) > 0 {
		renderForm(problems)
		return
	}

	result := h.books.Create(r.Context(), book)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.sessions.Success(w, r, "Libro agregado correctamente.")
		http.Redirect(w, r, "/books", http.StatusSeeOther)
	case apiclient.OutcomeConflict, apiclient.OutcomeValidationRejected:
		renderForm(nil, result.Message)
	case apiclient.OutcomeConnectivityFailure:
		renderForm(nil, "No se pudo conectar con la API para guardar el libro.")
	default:
		renderForm(nil, "Ocurrió un error inesperado al crear el libro.")
	}
}

func (h *Books) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	result := h.books.GetByID(r.Context(), id)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.render.Render(w, r, http.StatusOK, "book_form.html", map[string]any{
			"Title":  "Editar libro",
			"Action": "/books/" + strconv.Itoa(id) + "/edit",
			"Book":   result.Value,
		})
	case apiclient.OutcomeNotFound:
		h.render.NotFound(w, r)
	default:
		h.sessions.Error(w, r, "Error al cargar los datos del libro para editar.")
		http.Redirect(w, r, "/books", http.StatusSeeOther)
	}
}

// Edit updates a book. The path id and the form id must agree; a remote
// 304 or 404 both mean nothing was applied and re-render the form.
func (h *Books) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	book := parseBookForm(r)
	if book.ID != id {
		h.log.Warn("id de ruta no coincide con id de formulario", "path_id", id, "form_id", book.ID)
		http.Error(w, "Inconsistencia en el ID del libro.", http.StatusBadRequest)
		return
	}

	renderForm := func(fieldErrors map[string]string, formErrors ...string) {
		h.render.Render(w, r, http.StatusOK, "book_form.html", map[string]any{
			"Title":       "Editar libro",
			"Action":      "/books/" + strconv.Itoa(id) + "/edit",
			"Book":        book,
			"FieldErrors": fieldErrors,
			"FormErrors":  formErrors,
		})
	}

	if problems := book.Validate(); len(problems) > 0 {
		renderForm(problems)
		return
	}

	result := h.books.Update(r.Context(), id, book)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.sessions.Success(w, r, "Libro actualizado correctamente.")
		http.Redirect(w, r, "/books", http.StatusSeeOther)
	case apiclient.OutcomeNotFound:
		renderForm(nil, "No se pudo actualizar el libro. Puede que no exista o no haya cambios.")
	case apiclient.OutcomeConflict, apiclient.OutcomeValidationRejected:
		renderForm(nil, result.Message)
	case apiclient.OutcomeConnectivityFailure:
		renderForm(nil, "No se pudo conectar con la API para actualizar el libro.")
	default:
		renderForm(nil, "Ocurrió un error inesperado al actualizar el libro.")
	}
}

func (h *Books) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	result := h.books.GetByID(r.Context(), id)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.render.Render(w, r, http.StatusOK, "book_delete.html", map[string]any{
			"Title": "Eliminar libro",
			"Book":  result.Value,
		})
	case apiclient.OutcomeNotFound:
		h.render.NotFound(w, r)
	default:
		h.sessions.Error(w, r, "Error al cargar los datos del libro para eliminar.")
		http.Redirect(w, r, "/books", http.StatusSeeOther)
	}
}

// Delete removes a book and always redirects back to the listing. A
// conflict (active loans) surfaces the remote detail as a banner.
func (h *Books) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	result := h.books.Delete(r.Context(), id)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.sessions.Success(w, r, "Libro eliminado correctamente.")
	case apiclient.OutcomeConflict:
		msg := result.Message
		if msg == "" {
			msg = "No se pudo eliminar el libro. Puede que tenga préstamos asociados."
		}
		h.sessions.Error(w, r, msg)
	case apiclient.OutcomeNotFound:
		h.sessions.Error(w, r, "No se pudo eliminar el libro. Puede que no exista.")
	default:
		h.sessions.Error(w, r, "Ocurrió un error inesperado al eliminar el libro.")
	}

	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

func (h *Books) ExportPDF(w http.ResponseWriter, r *http.Request) {
	result := h.books.List(r.Context(), "", "")
	if !result.OK() {
		h.sessions.Error(w, r, "No se pudo exportar la lista de libros.")
		http.Redirect(w, r, "/books", http.StatusSeeOther)
		return
	}

	data, err := export.BooksPDF(result.Value)
	if err != nil {
		h.log.Error("error generando PDF de libros", "err", err)
		http.Error(w, "Ocurrió un error generando el documento.", http.StatusInternalServerError)
		return
	}
	servePDF(w, "Libros", data)
}

func (h *Books) ExportExcel(w http.ResponseWriter, r *http.Request) {
	result := h.books.List(r.Context(), "", "")
	if !result.OK() {
		h.sessions.Error(w, r, "No se pudo exportar la lista de libros.")
		http.Redirect(w, r, "/books", http.StatusSeeOther)
		return
	}

	data, err := export.BooksExcel(result.Value)
	if err != nil {
		h.log.Error("error generando Excel de libros", "err", err)
		http.Error(w, "Ocurrió un error generando el documento.", http.StatusInternalServerError)
		return
	}
	serveExcel(w, "Libros", data)
}

// parseBookForm maps the submitted fields onto a Book. Numeric fields
// that do not parse end up zero and fall to Validate.
func parseBookForm(r *http.Request) entity.Book {
	anio, _ := strconv.Atoi(r.PostFormValue("anio"))
	existencias, _ := strconv.Atoi(r.PostFormValue("existencias"))
	id, _ := strconv.Atoi(r.PostFormValue("id"))

	return entity.Book{
		ID:          id,
		Titulo:      strings.TrimSpace(r.PostFormValue("titulo")),
		Autor:       strings.TrimSpace(r.PostFormValue("autor")),
		Editorial:   strings.TrimSpace(r.PostFormValue("editorial")),
		ISBN:        strings.TrimSpace(r.PostFormValue("isbn")),
		Anio:        anio,
		Categoria:   strings.TrimSpace(r.PostFormValue("categoria")),
		Existencias: existencias,
	}
}
