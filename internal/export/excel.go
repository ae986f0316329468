package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Ruben1155/BiblioApp/internal/entity"
)

// spreadsheet writes one sheet with a bold, gray header row and
// auto-sized-ish fixed content below it.
func spreadsheet(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("generando hoja de cálculo: %w", err)
	}
	return buf.Bytes(), nil
}

// BooksExcel renders the book listing as a workbook.
func BooksExcel(books []entity.Book) ([]byte, error) {
	headers := []string{"Título", "Autor", "Editorial", "ISBN", "Año", "Categoría", "Existencias"}

	rows := make([][]any, 0, len(books))
	for _, b := range books {
		rows = append(rows, []any{b.Titulo, b.Autor, b.Editorial, b.ISBN, b.Anio, b.Categoria, b.Existencias})
	}
	return spreadsheet("Libros", headers, rows)
}

// UsersExcel renders the user listing as a workbook.
func UsersExcel(users []entity.User) ([]byte, error) {
	headers := []string{"Nombre", "Apellido", "Correo", "Teléfono", "Tipo"}

	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{u.Nombre, u.Apellido, u.Correo, u.Telefono, u.TipoUsuario})
	}
	return spreadsheet("Usuarios", headers, rows)
}

// LoansExcel renders the loan listing as a workbook.
func LoansExcel(loans []entity.Loan) ([]byte, error) {
	headers := []string{"Usuario", "Libro", "Fecha Préstamo", "Fec. Dev. Esperada", "Fec. Dev. Real", "Estado"}

	rows := make([][]any, 0, len(loans))
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
		rows = append(rows, []any{
			user, book,
			l.FechaPrestamo.Format(dateLayout),
			l.FechaDevolucionEsperada.Format(dateLayout),
			returned, l.Estado,
		})
	}
	return spreadsheet("Prestamos", headers, rows)
}
