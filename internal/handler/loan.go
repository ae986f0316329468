package handler

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Ruben1155/BiblioApp/internal/apiclient"
	"github.com/Ruben1155/BiblioApp/internal/entity"
	"github.com/Ruben1155/BiblioApp/internal/export"
	"github.com/Ruben1155/BiblioApp/internal/session"
)

const dateInput = "2006-01-02"

// Loans serves the loan listing, the creation and return flows, and
// exports. The API has no single-loan endpoint, so lookups list and
// filter locally.
type Loans struct {
	loans    *apiclient.LoanService
	users    *apiclient.UserService
	books    *apiclient.BookService
	sessions *session.Manager
	render   *Renderer
	log      *log.Logger
}

func NewLoans(loans *apiclient.LoanService, users *apiclient.UserService, books *apiclient.BookService,
	sessions *session.Manager, render *Renderer, logger *log.Logger) *Loans {
	return &Loans{loans: loans, users: users, books: books,
		sessions: sessions, render: render, log: logger.With("handler", "loans")}
}

func (h *Loans) List(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Préstamos"}

	result := h.loans.List(r.Context())
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		data["Loans"] = result.Value
	default:
		data["Loans"] = []entity.Loan{}
		data["Errors"] = []string{"No se pudo cargar la lista de préstamos."}
	}

	h.render.Render(w, r, http.StatusOK, "loans_list.html", data)
}

// dropdowns fetches the user and book listings concurrently; the form
// only renders once both are in.
func (h *Loans) dropdowns(r *http.Request) (apiclient.Result[[]entity.User], apiclient.Result[[]entity.Book]) {
	var (
		users apiclient.Result[[]entity.User]
		books apiclient.Result[[]entity.Book]
		wg    sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		users = h.users.List(r.Context())
	}()
	go func() {
		defer wg.Done()
		books = h.books.List(r.Context(), "", "")
	}()
	wg.Wait()

	return users, books
}

func (h *Loans) CreateForm(w http.ResponseWriter, r *http.Request) {
	users, books, ok := h.loadDropdowns(w, r)
	if !ok {
		return
	}

	h.render.Render(w, r, http.StatusOK, "loan_form.html", map[string]any{
		"Title": "Registrar préstamo",
		"Loan":  entity.Loan{FechaDevolucionEsperada: time.Now().AddDate(0, 0, 15)},
		"Users": users,
		"Books": books,
	})
}

func (h *Loans) loadDropdowns(w http.ResponseWriter, r *http.Request) ([]entity.User, []entity.Book, bool) {
	users, books := h.dropdowns(r)
	if !users.OK() || !books.OK() {
		h.sessions.Error(w, r, "Error al cargar datos para el formulario.")
		http.Redirect(w, r, "/loans", http.StatusSeeOther)
		return nil, nil, false
	}
	return users.Value, books.Value, true
}

func (h *Loans) Create(w http.ResponseWriter, r *http.Request) {
	loan := parseLoanForm(r)
	loan.Estado = entity.LoanPending
	h.log.Info("registrando préstamo", "idUsuario", loan.IDUsuario, "idLibro", loan.IDLibro)

	renderForm := func(fieldErrors map[string]string, formErrors ...string) {
		users, books, ok := h.loadDropdowns(w, r)
		if !ok {
			return
		}
		h.render.Render(w, r, http.StatusOK, "loan_form.html", map[string]any{
			"Title":       "Registrar préstamo",
			"Loan":        loan,
			"Users":       users,
			"Books":       books,
			"FieldErrors": fieldErrors,
			"FormErrors":  formErrors,
		})
	}

	if problems := loan.ValidateCreate(time.Now()); len(problems) > 0 {
		renderForm(problems)
		return
	}

	result := h.loans.Create(r.Context(), loan)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.sessions.Success(w, r, "Préstamo registrado correctamente.")
		http.Redirect(w, r, "/loans", http.StatusSeeOther)
	case apiclient.OutcomeConflict, apiclient.OutcomeValidationRejected:
		renderForm(nil, result.Message)
	case apiclient.OutcomeConnectivityFailure:
		renderForm(nil, "No se pudo conectar con la API para registrar el préstamo.")
	default:
		renderForm(nil, "Ocurrió un error inesperado al registrar el préstamo.")
	}
}

// find lists all loans and picks one by id.
func (h *Loans) find(r *http.Request, id int) (entity.Loan, apiclient.Outcome) {
	result := h.loans.List(r.Context())
	if !result.OK() {
		return entity.Loan{}, result.Outcome
	}
	for _, loan := range result.Value {
		if loan.ID == id {
			return loan, apiclient.OutcomeSuccess
		}
	}
	return entity.Loan{}, apiclient.OutcomeNotFound
}

func (h *Loans) ReturnForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	loan, outcome := h.find(r, id)
	switch outcome {
	case apiclient.OutcomeSuccess:
	case apiclient.OutcomeNotFound:
		h.render.NotFound(w, r)
		return
	default:
		h.sessions.Error(w, r, "No se pudo cargar el préstamo.")
		http.Redirect(w, r, "/loans", http.StatusSeeOther)
		return
	}

	if loan.Estado == entity.LoanReturned {
		h.sessions.Error(w, r, "El préstamo ya fue devuelto.")
		http.Redirect(w, r, "/loans", http.StatusSeeOther)
		return
	}

	loan.Estado = entity.LoanReturned
	h.render.Render(w, r, http.StatusOK, "loan_return.html", map[string]any{
		"Title":               "Registrar devolución",
		"Loan":                loan,
		"FechaDevolucionReal": time.Now().Format(dateInput),
	})
}

// Return records the actual return date and state change for a loan.
func (h *Loans) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	loan, outcome := h.find(r, id)
	switch outcome {
	case apiclient.OutcomeSuccess:
	case apiclient.OutcomeNotFound:
		h.render.NotFound(w, r)
		return
	default:
		h.sessions.Error(w, r, "No se pudo cargar el préstamo.")
		http.Redirect(w, r, "/loans", http.StatusSeeOther)
		return
	}

	loan.Estado = r.PostFormValue("estado")
	loan.FechaDevolucionReal = nil
	if raw := r.PostFormValue("fechaDevolucionReal"); raw != "" {
		if t, err := time.Parse(dateInput, raw); err == nil {
			loan.FechaDevolucionReal = &t
		}
	}

	renderForm := func(fieldErrors map[string]string, formErrors ...string) {
		h.render.Render(w, r, http.StatusOK, "loan_return.html", map[string]any{
			"Title":               "Registrar devolución",
			"Loan":                loan,
			"FechaDevolucionReal": r.PostFormValue("fechaDevolucionReal"),
			"FieldErrors":         fieldErrors,
			"FormErrors":          formErrors,
		})
	}

	if problems := loan.ValidateReturn(); len(problems) > 0 {
		renderForm(problems)
		return
	}

	result := h.loans.Update(r.Context(), id, loan)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.sessions.Success(w, r, "Préstamo actualizado correctamente.")
		http.Redirect(w, r, "/loans", http.StatusSeeOther)
	case apiclient.OutcomeNotFound:
		renderForm(nil, "No se pudo actualizar el préstamo. Puede que no exista o no haya cambios.")
	case apiclient.OutcomeConflict, apiclient.OutcomeValidationRejected:
		renderForm(nil, result.Message)
	case apiclient.OutcomeConnectivityFailure:
		renderForm(nil, "No se pudo conectar con la API para actualizar el préstamo.")
	default:
		renderForm(nil, "Ocurrió un error inesperado al actualizar el préstamo.")
	}
}

func (h *Loans) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	loan, outcome := h.find(r, id)
	switch outcome {
	case apiclient.OutcomeSuccess:
		h.render.Render(w, r, http.StatusOK, "loan_delete.html", map[string]any{
			"Title": "Eliminar préstamo",
			"Loan":  loan,
		})
	case apiclient.OutcomeNotFound:
		h.render.NotFound(w, r)
	default:
		h.sessions.Error(w, r, "No se pudo cargar el préstamo.")
		http.Redirect(w, r, "/loans", http.StatusSeeOther)
	}
}

func (h *Loans) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "ID inválido.", http.StatusBadRequest)
		return
	}

	result := h.loans.Delete(r.Context(), id)
	switch result.Outcome {
	case apiclient.OutcomeSuccess:
		h.sessions.Success(w, r, "Préstamo eliminado correctamente.")
	case apiclient.OutcomeConflict:
		msg := result.Message
		if msg == "" {
			msg = "No se pudo eliminar el préstamo."
		}
		h.sessions.Error(w, r, msg)
	case apiclient.OutcomeNotFound:
		h.sessions.Error(w, r, "No se pudo eliminar el préstamo. Puede que no exista.")
	default:
		h.sessions.Error(w, r, "Ocurrió un error inesperado al eliminar el préstamo.")
	}

	http.Redirect(w, r, "/loans", http.StatusSeeOther)
}

func (h *Loans) ExportPDF(w http.ResponseWriter, r *http.Request) {
	result := h.loans.List(r.Context())
	if !result.OK() {
		h.sessions.Error(w, r, "No se pudo exportar la lista de préstamos.")
		http.Redirect(w, r, "/loans", http.StatusSeeOther)
		return
	}

	data, err := export.LoansPDF(result.Value)
	if err != nil {
		h.log.Error("error generando PDF de préstamos", "err", err)
		http.Error(w, "Ocurrió un error generando el documento.", http.StatusInternalServerError)
		return
	}
	servePDF(w, "Prestamos", data)
}

func (h *Loans) ExportExcel(w http.ResponseWriter, r *http.Request) {
	result := h.loans.List(r.Context())
	if !result.OK() {
		h.sessions.Error(w, r, "No se pudo exportar la lista de préstamos.")
		http.Redirect(w, r, "/loans", http.StatusSeeOther)
		return
	}

	data, err := export.LoansExcel(result.Value)
	if err != nil {
		h.log.Error("error generando Excel de préstamos", "err", err)
		http.Error(w, "Ocurrió un error generando el documento.", http.StatusInternalServerError)
		return
	}
	serveExcel(w, "Prestamos", data)
}

func parseLoanForm(r *http.Request) entity.Loan {
	idUsuario, _ := strconv.Atoi(r.PostFormValue("idUsuario"))
	idLibro, _ := strconv.Atoi(r.PostFormValue("idLibro"))

	loan := entity.Loan{IDUsuario: idUsuario, IDLibro: idLibro}
	if raw := r.PostFormValue("fechaDevolucionEsperada"); raw != "" {
		if t, err := time.Parse(dateInput, raw); err == nil {
			loan.FechaDevolucionEsperada = t
		}
	}
	return loan
}
