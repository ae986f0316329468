package entity

import (
	"strings"
	"time"
)

// Loan states as the remote API reports them.
const (
	LoanPending  = "Pendiente"
	LoanReturned = "Devuelto"
	LoanOverdue  = "Atrasado"
)

// Loan mirrors the prestamo resource exposed by the remote API.
// NombreUsuario and TituloLibro are populated by the API on reads only.
type Loan struct {
	ID                      int        `json:"id"`
	IDUsuario               int        `json:"idUsuario"`
	IDLibro                 int        `json:"idLibro"`
	NombreUsuario           string     `json:"nombreUsuario,omitempty"`
	TituloLibro             string     `json:"tituloLibro,omitempty"`
	FechaPrestamo           time.Time  `json:"fechaPrestamo"`
	FechaDevolucionEsperada time.Time  `json:"fechaDevolucionEsperada"`
	FechaDevolucionReal     *time.Time `json:"fechaDevolucionReal,omitempty"`
	Estado                  string     `json:"estado"`
}

// Active reports whether the loan still counts against the book's stock.
func (l Loan) Active() bool {
	return strings.EqualFold(l.Estado, LoanPending) || strings.EqualFold(l.Estado, LoanOverdue)
}

// ValidateCreate checks a new loan before it is sent to the API.
// The expected return date must be strictly in the future.
func (l Loan) ValidateCreate(now time.Time) map[string]string {
	problems := map[string]string{}

	if l.IDUsuario <= 0 {
		problems["IDUsuario"] = "Debe seleccionar un usuario."
	}
	if l.IDLibro <= 0 {
		problems["IDLibro"] = "Debe seleccionar un libro."
	}
	today := now.Truncate(24 * time.Hour)
	if !l.FechaDevolucionEsperada.After(today) {
		problems["FechaDevolucionEsperada"] = "La fecha de devolución esperada debe ser posterior a hoy."
	}

	return problems
}

// ValidateReturn checks the state transition applied when a loan is
// marked as returned (or manually flagged as overdue).
func (l Loan) ValidateReturn() map[string]string {
	problems := map[string]string{}

	if l.Estado != LoanReturned && l.Estado != LoanOverdue {
		problems["Estado"] = "El estado seleccionado no es válido para esta operación."
	}
	if l.Estado == LoanReturned {
		if l.FechaDevolucionReal == nil || l.FechaDevolucionReal.Before(l.FechaPrestamo) {
			problems["FechaDevolucionReal"] = "La fecha de devolución real es obligatoria y no puede ser anterior a la fecha del préstamo."
		}
	}

	return problems
}
