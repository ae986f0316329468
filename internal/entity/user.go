package entity

import "strings"

// User mirrors the usuario resource exposed by the remote API. Clave is
// write-only: it is sent on registration and never returned by the API.
type User struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Apellido    string `json:"apellido"`
	Correo      string `json:"correo"`
	Telefono    string `json:"telefono,omitempty"`
	TipoUsuario string `json:"tipoUsuario"`
	Clave       string `json:"clave,omitempty"`
}

// FullName is the display name stored in the session after login.
func (u User) FullName() string {
	return strings.TrimSpace(u.Nombre + " " + u.Apellido)
}

func (u User) Validate() map[string]string {
	problems := map[string]string{}

	if u.Nombre == "" {
		problems["Nombre"] = "El nombre es obligatorio."
	}
	if u.Apellido == "" {
		problems["Apellido"] = "El apellido es obligatorio."
	}
	if u.Correo == "" {
		problems["Correo"] = "El correo electrónico es obligatorio."
	} else if !strings.Contains(u.Correo, "@") {
		problems["Correo"] = "El formato del correo no es válido."
	}
	if u.TipoUsuario == "" {
		problems["TipoUsuario"] = "El tipo de usuario es obligatorio."
	}

	return problems
}
