package entity

// Book mirrors the libro resource exposed by the remote API.
type Book struct {
	ID          int    `json:"id"`
	Titulo      string `json:"titulo"`
	Autor       string `json:"autor"`
	Editorial   string `json:"editorial"`
	ISBN        string `json:"isbn"`
	Anio        int    `json:"anio"`
	Categoria   string `json:"categoria"`
	Existencias int    `json:"existencias"`
}

// Validate checks the form-level constraints and returns one message per
// offending field, keyed by field name. An empty map means the book is valid.
func (b Book) Validate() map[string]string {
	problems := map[string]string{}

	if b.Titulo == "" {
		problems["Titulo"] = "El título es obligatorio."
	}
	if b.Autor == "" {
		problems["Autor"] = "El autor es obligatorio."
	}
	if b.Editorial == "" {
		problems["Editorial"] = "La editorial es obligatoria."
	}
	if b.ISBN == "" {
		problems["ISBN"] = "El ISBN es obligatorio."
	}
	if b.Anio < 1000 || b.Anio > 9999 {
		problems["Anio"] = "El año debe ser válido."
	}
	if b.Categoria == "" {
		problems["Categoria"] = "La categoría es obligatoria."
	}
	if b.Existencias < 0 {
		problems["Existencias"] = "Las existencias no pueden ser negativas."
	}

	return problems
}
