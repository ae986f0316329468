package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Ruben1155/BiblioApp/internal/entity"
)

const bookPath = "/libro"

// BookService exposes the CRUD operations of the remote libro resource.
type BookService struct {
	api *Client
}

func NewBookService(api *Client) *BookService {
	return &BookService{api: api}
}

// List fetches books, optionally filtered by title and author substrings.
// Blank filters are omitted from the query string entirely; the server
// treats an absent filter differently from an empty one.
func (s *BookService) List(ctx context.Context, titleFilter, authorFilter string) Result[[]entity.Book] {
	query := url.Values{}
	if strings.TrimSpace(titleFilter) != "" {
		query.Set("tituloFilter", titleFilter)
	}
	if strings.TrimSpace(authorFilter) != "" {
		query.Set("autorFilter", authorFilter)
	}

	s.api.log.Info("obteniendo libros", "tituloFilter", titleFilter, "autorFilter", authorFilter)
	result := call[[]entity.Book](ctx, s.api, http.MethodGet, bookPath, query, nil)
	s.api.log.Info("libros obtenidos", "outcome", result.Outcome.String(), "count", len(result.Value))
	return result
}

func (s *BookService) GetByID(ctx context.Context, id int) Result[entity.Book] {
	s.api.log.Info("obteniendo libro", "id", id)
	result := call[entity.Book](ctx, s.api, http.MethodGet, fmt.Sprintf("%s/%d", bookPath, id), nil, nil)
	s.api.log.Info("libro obtenido", "id", id, "outcome", result.Outcome.String())
	return result
}

// Create registers a new book. The call is not idempotent: the remote API
// assigns the id and applies no deduplication key.
func (s *BookService) Create(ctx context.Context, book entity.Book) Result[entity.Book] {
	s.api.log.Info("creando libro", "titulo", book.Titulo)
	result := call[entity.Book](ctx, s.api, http.MethodPost, bookPath, nil, book)
	s.api.log.Info("libro creado", "titulo", book.Titulo, "outcome", result.Outcome.String())
	return result
}

// Update rewrites the book with the given id. A remote 304 surfaces as
// OutcomeNotFound: no effective change was applied.
func (s *BookService) Update(ctx context.Context, id int, book entity.Book) Result[struct{}] {
	s.api.log.Info("actualizando libro", "id", id)
	result := call[struct{}](ctx, s.api, http.MethodPut, fmt.Sprintf("%s/%d", bookPath, id), nil, book)
	s.api.log.Info("libro actualizado", "id", id, "outcome", result.Outcome.String())
	return result
}

// Delete removes a book. The API answers 409 when the book still has
// active loans.
func (s *BookService) Delete(ctx context.Context, id int) Result[struct{}] {
	s.api.log.Info("eliminando libro", "id", id)
	result := call[struct{}](ctx, s.api, http.MethodDelete, fmt.Sprintf("%s/%d", bookPath, id), nil, nil)
	s.api.log.Info("libro eliminado", "id", id, "outcome", result.Outcome.String())
	return result
}
