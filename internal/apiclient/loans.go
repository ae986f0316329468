package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Ruben1155/BiblioApp/internal/entity"
)

const loanPath = "/prestamo"

// LoanService exposes the operations of the remote prestamo resource.
// The API has no single-loan lookup; callers list and filter locally.
type LoanService struct {
	api *Client
}

func NewLoanService(api *Client) *LoanService {
	return &LoanService{api: api}
}

func (s *LoanService) List(ctx context.Context) Result[[]entity.Loan] {
	s.api.log.Info("obteniendo préstamos")
	result := call[[]entity.Loan](ctx, s.api, http.MethodGet, loanPath, nil, nil)
	s.api.log.Info("préstamos obtenidos", "outcome", result.Outcome.String(), "count", len(result.Value))
	return result
}

// Create registers a new loan. The API rejects it with a 4xx when the
// book has no stock left.
func (s *LoanService) Create(ctx context.Context, loan entity.Loan) Result[entity.Loan] {
	s.api.log.Info("registrando préstamo", "idUsuario", loan.IDUsuario, "idLibro", loan.IDLibro)
	result := call[entity.Loan](ctx, s.api, http.MethodPost, loanPath, nil, loan)
	s.api.log.Info("préstamo registrado", "idUsuario", loan.IDUsuario, "idLibro", loan.IDLibro,
		"outcome", result.Outcome.String())
	return result
}

// Update rewrites a loan, typically to record the actual return date and
// flip the state to Devuelto.
func (s *LoanService) Update(ctx context.Context, id int, loan entity.Loan) Result[struct{}] {
	s.api.log.Info("actualizando préstamo", "id", id, "estado", loan.Estado)
	result := call[struct{}](ctx, s.api, http.MethodPut, fmt.Sprintf("%s/%d", loanPath, id), nil, loan)
	s.api.log.Info("préstamo actualizado", "id", id, "outcome", result.Outcome.String())
	return result
}

func (s *LoanService) Delete(ctx context.Context, id int) Result[struct{}] {
	s.api.log.Info("eliminando préstamo", "id", id)
	result := call[struct{}](ctx, s.api, http.MethodDelete, fmt.Sprintf("%s/%d", loanPath, id), nil, nil)
	s.api.log.Info("préstamo eliminado", "id", id, "outcome", result.Outcome.String())
	return result
}
