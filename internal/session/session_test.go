package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// roundTrip copies the cookies written to w onto a fresh request, the way
// a browser would on the next navigation. When the same cookie was set
// more than once only the last value survives, as in a real browser jar.
func roundTrip(t *testing.T, w *httptest.ResponseRecorder, target string) *http.Request {
	t.Helper()
	jar := map[string]*http.Cookie{}
	order := []string{}
	for _, c := range w.Result().Cookies() {
		if _, seen := jar[c.Name]; !seen {
			order = append(order, c.Name)
		}
		jar[c.Name] = c
	}

	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, name := range order {
		r.AddCookie(jar[name])
	}
	return r
}

func TestSession(t *testing.T) {
	t.Run("IsAdmin", func(t *testing.T) {
		cases := []struct {
			role string
			want bool
		}{
			{"Administrador", true},
			{"administrador", true},
			{"ADMINISTRADOR", true},
			{"AdMiNiStRaDoR", true},
			{"Estudiante", false},
			{"Profesor", false},
			{"", false},
			{"Administradora", false},
		}
		for _, tc := range cases {
			got := Session{Role: tc.role}.IsAdmin()
			if got != tc.want {
				t.Errorf("IsAdmin(%q) = %v, want %v", tc.role, got, tc.want)
			}
		}
	})

	t.Run("zero value is not logged in", func(t *testing.T) {
		if (Session{}).LoggedIn() {
			t.Error("zero session must not be logged in")
		}
	})
}

func TestManager(t *testing.T) {
	t.Run("SignIn then Current restores the values", func(t *testing.T) {
		m := NewManager([]byte("test-key-0123456789abcdef0123456789abcdef"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		if err := m.SignIn(w, r, 42, "Ana Torres", "Administrador"); err != nil {
			t.Fatalf("SignIn: %v", err)
		}

		current := m.Current(roundTrip(t, w, "/dashboard"))
		if current.UserID != 42 || current.UserName != "Ana Torres" || current.Role != "Administrador" {
			t.Errorf("unexpected session: %+v", current)
		}
		if !current.LoggedIn() || !current.IsAdmin() {
			t.Error("expected a logged-in admin session")
		}
	})

	t.Run("missing cookie yields zero session", func(t *testing.T) {
		m := NewManager(nil)
		current := m.Current(httptest.NewRequest(http.MethodGet, "/books", nil))
		if current.LoggedIn() {
			t.Errorf("expected zero session, got %+v", current)
		}
	})

	t.Run("cookie signed with a different key yields zero session", func(t *testing.T) {
		first := NewManager([]byte("first-key-0123456789abcdef012345678"))
		second := NewManager([]byte("second-key-0123456789abcdef01234567"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		first.SignIn(w, r, 42, "Ana Torres", "Administrador")

		current := second.Current(roundTrip(t, w, "/dashboard"))
		if current.LoggedIn() {
			t.Errorf("expected undecodable cookie to be ignored, got %+v", current)
		}
	})

	t.Run("Clear expires the cookie", func(t *testing.T) {
		m := NewManager([]byte("test-key-0123456789abcdef0123456789abcdef"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		m.SignIn(w, r, 42, "Ana Torres", "Estudiante")

		w2 := httptest.NewRecorder()
		if err := m.Clear(w2, roundTrip(t, w, "/logout")); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		expired := false
		for _, c := range w2.Result().Cookies() {
			if c.Name == cookieName && c.MaxAge < 0 {
				expired = true
			}
		}
		if !expired {
			t.Error("expected the session cookie to be expired")
		}
	})

	t.Run("flashes survive exactly one pop", func(t *testing.T) {
		m := NewManager([]byte("test-key-0123456789abcdef0123456789abcdef"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/books/new", nil)
		m.Success(w, r, "Libro creado exitosamente.")
		m.Error(w, r, "Algo salió mal.")

		w2 := httptest.NewRecorder()
		r2 := roundTrip(t, w, "/books")
		successes, errors := m.PopFlashes(w2, r2)
		if len(successes) != 1 || successes[0] != "Libro creado exitosamente." {
			t.Errorf("unexpected successes: %v", successes)
		}
		if len(errors) != 1 || errors[0] != "Algo salió mal." {
			t.Errorf("unexpected errors: %v", errors)
		}

		w3 := httptest.NewRecorder()
		successes, errors = m.PopFlashes(w3, roundTrip(t, w2, "/books"))
		if len(successes) != 0 || len(errors) != 0 {
			t.Errorf("expected flashes consumed, got %v / %v", successes, errors)
		}
	})

	t.Run("CSRF token is stable per session and verifies", func(t *testing.T) {
		m := NewManager([]byte("test-key-0123456789abcdef0123456789abcdef"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/new", nil)
		token := m.CSRFToken(w, r)
		if token == "" {
			t.Fatal("expected a token")
		}

		r2 := roundTrip(t, w, "/books/new")
		if again := m.CSRFToken(httptest.NewRecorder(), r2); again != token {
			t.Errorf("expected stable token, got %q then %q", token, again)
		}
		if !m.VerifyCSRF(r2, token) {
			t.Error("expected the session token to verify")
		}
		if m.VerifyCSRF(r2, "forged") {
			t.Error("expected a forged token to be rejected")
		}
		if m.VerifyCSRF(httptest.NewRequest(http.MethodPost, "/books/new", nil), token) {
			t.Error("expected verification without a session to fail")
		}
	})
}
