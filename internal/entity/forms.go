package entity

import "strings"

// Credentials carries the login form. The JSON shape matches the body the
// remote validation endpoint expects.
type Credentials struct {
	Correo string `json:"correo"`
	Clave  string `json:"clave"`
}

func (c Credentials) Validate() map[string]string {
	problems := map[string]string{}

	if c.Correo == "" {
		problems["Correo"] = "El correo electrónico es obligatorio."
	} else if !strings.Contains(c.Correo, "@") {
		problems["Correo"] = "El formato del correo no es válido."
	}
	if c.Clave == "" {
		problems["Clave"] = "La clave es obligatoria."
	}

	return problems
}

// Registration carries the public sign-up form. It is mapped to a User
// (including the chosen password) before being sent to the API.
type Registration struct {
	Nombre         string
	Apellido       string
	Correo         string
	Telefono       string
	TipoUsuario    string
	Clave          string
	ConfirmarClave string
}

func (r Registration) Validate() map[string]string {
	problems := r.User().Validate()

	if len(r.Clave) < 8 {
		problems["Clave"] = "La contraseña debe tener al menos 8 caracteres."
	}
	if r.ConfirmarClave != r.Clave {
		problems["ConfirmarClave"] = "La contraseña y la confirmación no coinciden."
	}

	return problems
}

// User converts the registration form into the DTO sent to the API.
func (r Registration) User() User {
	return User{
		Nombre:      r.Nombre,
		Apellido:    r.Apellido,
		Correo:      r.Correo,
		Telefono:    r.Telefono,
		TipoUsuario: r.TipoUsuario,
		Clave:       r.Clave,
	}
}
