package handler

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Ruben1155/BiblioApp/internal/apiclient"
	"github.com/Ruben1155/BiblioApp/internal/entity"
	"github.com/Ruben1155/BiblioApp/internal/session"
)

// Dashboard computes the admin counters from three independent listings
// fetched in parallel.
type Dashboard struct {
	books    *apiclient.BookService
	users    *apiclient.UserService
	loans    *apiclient.LoanService
	sessions *session.Manager
	render   *Renderer
	log      *log.Logger
}

func NewDashboard(books *apiclient.BookService, users *apiclient.UserService, loans *apiclient.LoanService,
	sessions *session.Manager, render *Renderer, logger *log.Logger) *Dashboard {
	return &Dashboard{books: books, users: users, loans: loans,
		sessions: sessions, render: render, log: logger.With("handler", "dashboard")}
}

// Index fans out the three list calls and joins before counting.
// Ordering between the calls does not matter; any failure degrades the
// whole summary to the error marker rather than showing partial numbers.
func (h *Dashboard) Index(w http.ResponseWriter, r *http.Request) {
	var (
		books apiclient.Result[[]entity.Book]
		users apiclient.Result[[]entity.User]
		loans apiclient.Result[[]entity.Loan]
		wg    sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		books = h.books.List(r.Context(), "", "")
	}()
	go func() {
		defer wg.Done()
		users = h.users.List(r.Context())
	}()
	go func() {
		defer wg.Done()
		loans = h.loans.List(r.Context())
	}()
	wg.Wait()

	data := map[string]any{"Title": "Dashboard"}

	if !books.OK() || !users.OK() || !loans.OK() {
		h.log.Error("error al obtener datos para el dashboard",
			"libros", books.Outcome.String(), "usuarios", users.Outcome.String(), "prestamos", loans.Outcome.String())
		data["Summary"] = entity.FailedDashboard()
		data["Errors"] = []string{"Error al cargar los datos del dashboard."}
		h.render.Render(w, r, http.StatusOK, "dashboard.html", data)
		return
	}

	active := 0
	for _, loan := range loans.Value {
		if loan.Active() {
			active++
		}
	}

	summary := entity.DashboardSummary{
		TotalBooks:  len(books.Value),
		TotalUsers:  len(users.Value),
		ActiveLoans: active,
	}
	h.log.Info("dashboard calculado", "libros", summary.TotalBooks,
		"usuarios", summary.TotalUsers, "prestamos_activos", summary.ActiveLoans)

	data["Summary"] = summary
	h.render.Render(w, r, http.StatusOK, "dashboard.html", data)
}
