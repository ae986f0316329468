package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Ruben1155/BiblioApp/internal/entity"
)

const userPath = "/usuario"

// UserService exposes the CRUD operations of the remote usuario resource.
type UserService struct {
	api *Client
}

func NewUserService(api *Client) *UserService {
	return &UserService{api: api}
}

func (s *UserService) List(ctx context.Context) Result[[]entity.User] {
	s.api.log.Info("obteniendo usuarios")
	result := call[[]entity.User](ctx, s.api, http.MethodGet, userPath, nil, nil)
	s.api.log.Info("usuarios obtenidos", "outcome", result.Outcome.String(), "count", len(result.Value))
	return result
}

func (s *UserService) GetByID(ctx context.Context, id int) Result[entity.User] {
	s.api.log.Info("obteniendo usuario", "id", id)
	result := call[entity.User](ctx, s.api, http.MethodGet, fmt.Sprintf("%s/%d", userPath, id), nil, nil)
	s.api.log.Info("usuario obtenido", "id", id, "outcome", result.Outcome.String())
	return result
}

// Create registers a new user. When the user comes from the public
// registration form, Clave carries the chosen password; otherwise it is
// empty and the API assigns a default one. A 409 means the correo is
// already taken.
func (s *UserService) Create(ctx context.Context, user entity.User) Result[entity.User] {
	s.api.log.Info("creando usuario", "correo", user.Correo)
	result := call[entity.User](ctx, s.api, http.MethodPost, userPath, nil, user)
	s.api.log.Info("usuario creado", "correo", user.Correo, "outcome", result.Outcome.String())
	return result
}

// Update rewrites a user's profile. The password is never sent on
// updates, regardless of what the caller left in Clave.
func (s *UserService) Update(ctx context.Context, id int, user entity.User) Result[struct{}] {
	user.Clave = ""
	s.api.log.Info("actualizando usuario", "id", id)
	result := call[struct{}](ctx, s.api, http.MethodPut, fmt.Sprintf("%s/%d", userPath, id), nil, user)
	s.api.log.Info("usuario actualizado", "id", id, "outcome", result.Outcome.String())
	return result
}

// Delete removes a user. The API answers 409 when the user still has
// loans on record.
func (s *UserService) Delete(ctx context.Context, id int) Result[struct{}] {
	s.api.log.Info("eliminando usuario", "id", id)
	result := call[struct{}](ctx, s.api, http.MethodDelete, fmt.Sprintf("%s/%d", userPath, id), nil, nil)
	s.api.log.Info("usuario eliminado", "id", id, "outcome", result.Outcome.String())
	return result
}
