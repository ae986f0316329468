package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Ruben1155/BiblioApp/internal/entity"
)

var sampleBooks = []entity.Book{
	{ID: 1, Titulo: "Cien años de soledad", Autor: "García Márquez", Editorial: "Sudamericana",
		ISBN: "978-84-376-0494-7", Anio: 1967, Categoria: "Novela", Existencias: 4},
	{ID: 2, Titulo: "Ficciones", Autor: "Borges", Editorial: "Sur",
		ISBN: "978-84-206-3313-5", Anio: 1944, Categoria: "Cuento", Existencias: 2},
}

func TestBooksPDF(t *testing.T) {
	data, err := BooksPDF(sampleBooks)
	if err != nil {
		t.Fatalf("BooksPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("expected a PDF document")
	}

	empty, err := BooksPDF(nil)
	if err != nil {
		t.Fatalf("BooksPDF with no rows: %v", err)
	}
	if !bytes.HasPrefix(empty, []byte("%PDF")) {
		t.Error("expected a PDF document even without rows")
	}
}

func TestLoansPDF(t *testing.T) {
	returned := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	loans := []entity.Loan{
		{ID: 1, NombreUsuario: "Ana Torres", TituloLibro: "Ficciones",
			FechaPrestamo:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			FechaDevolucionEsperada: time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
			Estado:                  entity.LoanPending},
		{ID: 2, NombreUsuario: "Luis Gil", TituloLibro: "Rayuela",
			FechaPrestamo:           time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			FechaDevolucionEsperada: time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC),
			FechaDevolucionReal:     &returned,
			Estado:                  entity.LoanReturned},
	}

	data, err := LoansPDF(loans)
	if err != nil {
		t.Fatalf("LoansPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("expected a PDF document")
	}
}

func TestBooksExcel(t *testing.T) {
	data, err := BooksExcel(sampleBooks)
	if err != nil {
		t.Fatalf("BooksExcel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reading the workbook back: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Libros")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(rows))
	}
	if rows[0][0] != "Título" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "Cien años de soledad" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
}

func TestUsersExcel(t *testing.T) {
	users := []entity.User{
		{ID: 1, Nombre: "Ana", Apellido: "Torres", Correo: "ana@example.com", TipoUsuario: "Administrador"},
	}

	data, err := UsersExcel(users)
	if err != nil {
		t.Fatalf("UsersExcel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reading the workbook back: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Usuarios")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
}
