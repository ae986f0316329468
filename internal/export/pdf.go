// Package export renders entity listings as tabular PDF and spreadsheet
// documents with fixed per-entity column sets.
package export

import (
	"bytes"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/Ruben1155/BiblioApp/internal/entity"
)

const dateLayout = "02/01/2006"

// tablePDF lays out a titled table on an A4 page. Widths are in mm and
// must match the header count.
func tablePDF(title string, headers []string, widths []float64, rows [][]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BooksPDF renders the book listing with the fixed seven-column layout.
func BooksPDF(books []entity.Book) ([]byte, error) {
	headers := []string{"Título", "Autor", "Editorial", "ISBN", "Año", "Categoría", "Existencias"}
	widths := []float64{45, 30, 30, 25, 12, 28, 20}

	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			b.Titulo, b.Autor, b.Editorial, b.ISBN,
			strconv.Itoa(b.Anio), b.Categoria, strconv.Itoa(b.Existencias),
		})
	}
	return tablePDF("Lista de Libros", headers, widths, rows)
}

// UsersPDF renders the user listing.
func UsersPDF(users []entity.User) ([]byte, error) {
	headers := []string{"Nombre", "Apellido", "Correo", "Teléfono", "Tipo"}
	widths := []float64{35, 35, 55, 30, 35}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Nombre, u.Apellido, u.Correo, u.Telefono, u.TipoUsuario})
	}
	return tablePDF("Lista de Usuarios", headers, widths, rows)
}

// LoansPDF renders the loan listing. A missing real return date shows as
// an empty cell.
func LoansPDF(loans []entity.Loan) ([]byte, error) {
	headers := []string{"Usuario", "Libro", "Fecha Préstamo", "Fec. Dev. Esperada", "Fec. Dev. Real", "Estado"}
	widths := []float64{38, 45, 27, 27, 27, 26}

	rows := make([][]string, 0, len(loans))
	for _, l := range loans {
		user := l.NombreUsuario
		if user == "" {
			user = "#" + strconv.Itoa(l.IDUsuario)
		}
		book := l.TituloLibro
		if book == "" {
			book = "#" + strconv.Itoa(l.IDLibro)
		}
		returned := ""
		if l.FechaDevolucionReal != nil {
			returned = l.FechaDevolucionReal.Format(dateLayout)
		}
		rows = append(rows, []string{
			user, book,
			l.FechaPrestamo.Format(dateLayout),
			l.FechaDevolucionEsperada.Format(dateLayout),
			returned, l.Estado,
		})
	}
	return tablePDF("Lista de Préstamos", headers, widths, rows)
}
