package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ruben1155/BiblioApp/internal/entity"
)

func TestNew(t *testing.T) {
	t.Run("trims trailing slash from base URL", func(t *testing.T) {
		c := New("http://example.com/api/", nil, nil)
		if c.baseURL != "http://example.com/api" {
			t.Errorf("expected trimmed base URL, got %s", c.baseURL)
		}
	})

	t.Run("nil http client gets default timeout", func(t *testing.T) {
		c := New("http://example.com", nil, nil)
		if c.http.Timeout != DefaultTimeout {
			t.Errorf("expected timeout %v, got %v", DefaultTimeout, c.http.Timeout)
		}
	})
}

func TestTranslate(t *testing.T) {
	t.Run("2xx with body is Success", func(t *testing.T) {
		result := translate[entity.Book](http.StatusOK, []byte(`{"id":3,"titulo":"Rayuela"}`))
		if result.Outcome != OutcomeSuccess {
			t.Fatalf("expected Success, got %s", result.Outcome)
		}
		if result.Value.ID != 3 || result.Value.Titulo != "Rayuela" {
			t.Errorf("unexpected value: %+v", result.Value)
		}
	})

	t.Run("2xx with empty body is Success with zero value", func(t *testing.T) {
		result := translate[entity.Book](http.StatusNoContent, nil)
		if result.Outcome != OutcomeSuccess {
			t.Fatalf("expected Success, got %s", result.Outcome)
		}
		if result.Value.ID != 0 {
			t.Errorf("expected zero value, got %+v", result.Value)
		}
	})

	t.Run("2xx with malformed body is UnexpectedFailure", func(t *testing.T) {
		result := translate[entity.Book](http.StatusOK, []byte(`{"id":`))
		if result.Outcome != OutcomeUnexpectedFailure {
			t.Fatalf("expected UnexpectedFailure, got %s", result.Outcome)
		}
	})

	t.Run("404 is NotFound", func(t *testing.T) {
		result := translate[entity.Book](http.StatusNotFound, nil)
		if result.Outcome != OutcomeNotFound {
			t.Fatalf("expected NotFound, got %s", result.Outcome)
		}
	})

	t.Run("304 is NotFound, never Success", func(t *testing.T) {
		result := translate[struct{}](http.StatusNotModified, nil)
		if result.Outcome != OutcomeNotFound {
			t.Fatalf("expected NotFound, got %s", result.Outcome)
		}
		if result.OK() {
			t.Error("304 must not report OK")
		}
	})

	t.Run("409 is Conflict carrying the problem detail", func(t *testing.T) {
		body := []byte(`{"title":"Conflict","detail":"El libro tiene préstamos activos."}`)
		result := translate[struct{}](http.StatusConflict, body)
		if result.Outcome != OutcomeConflict {
			t.Fatalf("expected Conflict, got %s", result.Outcome)
		}
		if result.Message != "El libro tiene préstamos activos." {
			t.Errorf("expected detail message, got %q", result.Message)
		}
	})

	t.Run("409 without detail falls back to title", func(t *testing.T) {
		result := translate[struct{}](http.StatusConflict, []byte(`{"title":"Conflict"}`))
		if result.Message != "Conflict" {
			t.Errorf("expected title fallback, got %q", result.Message)
		}
	})

	t.Run("other 4xx is ValidationRejected", func(t *testing.T) {
		for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity} {
			result := translate[struct{}](status, []byte(`{"detail":"datos inválidos"}`))
			if result.Outcome != OutcomeValidationRejected {
				t.Errorf("status %d: expected ValidationRejected, got %s", status, result.Outcome)
			}
		}
	})

	t.Run("5xx is UnexpectedFailure", func(t *testing.T) {
		result := translate[struct{}](http.StatusInternalServerError, []byte("boom"))
		if result.Outcome != OutcomeUnexpectedFailure {
			t.Fatalf("expected UnexpectedFailure, got %s", result.Outcome)
		}
	})
}

func TestBookService(t *testing.T) {
	t.Run("List omits blank filters from the query string", func(t *testing.T) {
		var gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			json.NewEncoder(w).Encode([]entity.Book{})
		}))
		defer server.Close()

		svc := NewBookService(New(server.URL, nil, nil))

		svc.List(context.Background(), "", "")
		if gotQuery != "" {
			t.Errorf("expected no query string, got %q", gotQuery)
		}

		svc.List(context.Background(), "   ", "")
		if gotQuery != "" {
			t.Errorf("expected whitespace filter omitted, got %q", gotQuery)
		}

		svc.List(context.Background(), "Cien años", "")
		if gotQuery != "tituloFilter=Cien+a%C3%B1os" {
			t.Errorf("unexpected query string: %q", gotQuery)
		}
		if strings.Contains(gotQuery, "autorFilter") {
			t.Error("blank author filter must not appear")
		}

		svc.List(context.Background(), "Cien años", "García Márquez")
		if !strings.Contains(gotQuery, "tituloFilter=") || !strings.Contains(gotQuery, "autorFilter=") {
			t.Errorf("expected both filters, got %q", gotQuery)
		}
	})

	t.Run("List success decodes books", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/libro" {
				t.Errorf("expected path /libro, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]entity.Book{{ID: 1, Titulo: "Pedro Páramo", Autor: "Juan Rulfo"}})
		}))
		defer server.Close()

		svc := NewBookService(New(server.URL, nil, nil))
		result := svc.List(context.Background(), "", "")
		if !result.OK() {
			t.Fatalf("expected Success, got %s", result.Outcome)
		}
		if len(result.Value) != 1 || result.Value[0].Titulo != "Pedro Páramo" {
			t.Errorf("unexpected books: %+v", result.Value)
		}
	})

	t.Run("GetByID is repeatable without side effects", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/libro/7" {
				t.Errorf("expected path /libro/7, got %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(entity.Book{ID: 7, Titulo: "Ficciones"})
		}))
		defer server.Close()

		svc := NewBookService(New(server.URL, nil, nil))
		first := svc.GetByID(context.Background(), 7)
		second := svc.GetByID(context.Background(), 7)
		if first.Value != second.Value {
			t.Errorf("expected identical results, got %+v and %+v", first.Value, second.Value)
		}
	})

	t.Run("Update sends PUT and maps 304 to NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			w.WriteHeader(http.StatusNotModified)
		}))
		defer server.Close()

		svc := NewBookService(New(server.URL, nil, nil))
		result := svc.Update(context.Background(), 7, entity.Book{ID: 7, Titulo: "Ficciones"})
		if result.Outcome != OutcomeNotFound {
			t.Fatalf("expected NotFound on 304, got %s", result.Outcome)
		}
	})

	t.Run("Delete conflict carries the server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"detail": "El libro tiene préstamos activos."})
		}))
		defer server.Close()

		svc := NewBookService(New(server.URL, nil, nil))
		result := svc.Delete(context.Background(), 7)
		if result.Outcome != OutcomeConflict {
			t.Fatalf("expected Conflict, got %s", result.Outcome)
		}
		if result.Message != "El libro tiene préstamos activos." {
			t.Errorf("unexpected message: %q", result.Message)
		}
	})

	t.Run("unreachable server is ConnectivityFailure", func(t *testing.T) {
		svc := NewBookService(New("http://127.0.0.1:1", nil, nil))
		result := svc.List(context.Background(), "", "")
		if result.Outcome != OutcomeConnectivityFailure {
			t.Fatalf("expected ConnectivityFailure, got %s", result.Outcome)
		}
		if result.Err == nil {
			t.Error("expected a wrapped transport error")
		}
	})

	t.Run("timeout is ConnectivityFailure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		svc := NewBookService(New(server.URL, &http.Client{Timeout: 20 * time.Millisecond}, nil))
		result := svc.List(context.Background(), "", "")
		if result.Outcome != OutcomeConnectivityFailure {
			t.Fatalf("expected ConnectivityFailure, got %s", result.Outcome)
		}
	})
}

func TestAuthService(t *testing.T) {
	t.Run("Validate posts credentials and decodes the user", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/usuario/validar" {
				t.Errorf("expected POST /usuario/validar, got %s %s", r.Method, r.URL.Path)
			}
			var creds map[string]string
			json.NewDecoder(r.Body).Decode(&creds)
			if creds["correo"] != "ana@example.com" {
				t.Errorf("unexpected payload: %v", creds)
			}
			json.NewEncoder(w).Encode(entity.User{ID: 2, Nombre: "Ana", TipoUsuario: "Administrador"})
		}))
		defer server.Close()

		svc := NewAuthService(New(server.URL, nil, nil))
		result := svc.Validate(context.Background(), entity.Credentials{Correo: "ana@example.com", Clave: "secreta"})
		if !result.OK() {
			t.Fatalf("expected Success, got %s", result.Outcome)
		}
		if result.Value.TipoUsuario != "Administrador" {
			t.Errorf("unexpected user: %+v", result.Value)
		}
	})

	t.Run("rejected credentials are ValidationRejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "credenciales inválidas"})
		}))
		defer server.Close()

		svc := NewAuthService(New(server.URL, nil, nil))
		result := svc.Validate(context.Background(), entity.Credentials{Correo: "ana@example.com", Clave: "mala"})
		if result.Outcome != OutcomeValidationRejected {
			t.Fatalf("expected ValidationRejected, got %s", result.Outcome)
		}
	})
}
