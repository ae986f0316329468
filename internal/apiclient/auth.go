package apiclient

import (
	"context"
	"net/http"

	"github.com/Ruben1155/BiblioApp/internal/entity"
)

const validatePath = "/usuario/validar"

// AuthService validates credentials against the remote API. Credentials
// always travel in a POST body, never in the query string.
type AuthService struct {
	api *Client
}

func NewAuthService(api *Client) *AuthService {
	return &AuthService{api: api}
}

// Validate checks the credentials and returns the matching user. A remote
// 401 comes back as OutcomeValidationRejected: wrong correo or clave, not
// a failure of the call itself.
func (s *AuthService) Validate(ctx context.Context, creds entity.Credentials) Result[entity.User] {
	s.api.log.Info("validando credenciales", "correo", creds.Correo)
	result := call[entity.User](ctx, s.api, http.MethodPost, validatePath, nil, creds)
	s.api.log.Info("credenciales validadas", "correo", creds.Correo, "outcome", result.Outcome.String())
	return result
}
