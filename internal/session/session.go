// Package session wraps gorilla/sessions with the three values this
// application stores, plus one-shot flash messages and the CSRF token.
package session

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// AdminRole is the sole role with access to the dashboard and user
// management. Comparison is always case-insensitive.
const AdminRole = "Administrador"

const (
	cookieName  = "biblioapp_session"
	idleSeconds = 30 * 60

	keyUserID   = "user_id"
	keyUserName = "user_name"
	keyRole     = "user_role"
	keyCSRF     = "csrf_token"

	flashSuccess = "success"
	flashError   = "error"
)

// Session is the typed view of one browser session. The zero value means
// nobody is logged in.
type Session struct {
	UserID   int
	UserName string
	Role     string
}

func (s Session) LoggedIn() bool { return s.UserID > 0 }

// IsAdmin applies the admin predicate: exact, case-insensitive match
// against AdminRole.
func (s Session) IsAdmin() bool { return strings.EqualFold(s.Role, AdminRole) }

// Manager owns the cookie store. Sessions live in an HTTP-only cookie
// with a 30-minute idle timeout.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager builds a Manager. When authKey is empty a random key is
// generated, which invalidates existing cookies on restart.
func NewManager(authKey []byte) *Manager {
	if len(authKey) == 0 {
		authKey = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(authKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   idleSeconds,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store}
}

// Current reads the typed session values for this request. A missing or
// undecodable cookie yields the zero Session, never an error.
func (m *Manager) Current(r *http.Request) Session {
	sess, _ := m.store.Get(r, cookieName)

	current := Session{}
	if id, ok := sess.Values[keyUserID].(int); ok {
		current.UserID = id
	}
	if name, ok := sess.Values[keyUserName].(string); ok {
		current.UserName = name
	}
	if role, ok := sess.Values[keyRole].(string); ok {
		current.Role = role
	}
	return current
}

// SignIn stores the logged-in user. This is the only place session values
// are set.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, userID int, userName, role string) error {
	sess, _ := m.store.Get(r, cookieName)
	sess.Values[keyUserID] = userID
	sess.Values[keyUserName] = userName
	sess.Values[keyRole] = role
	return sess.Save(r, w)
}

// Clear drops the whole session. This is the only place session values
// are removed.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, cookieName)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// Success queues a one-shot success banner for the next render.
func (m *Manager) Success(w http.ResponseWriter, r *http.Request, msg string) {
	m.addFlash(w, r, flashSuccess, msg)
}

// Error queues a one-shot error banner for the next render.
func (m *Manager) Error(w http.ResponseWriter, r *http.Request, msg string) {
	m.addFlash(w, r, flashError, msg)
}

func (m *Manager) addFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	sess, _ := m.store.Get(r, cookieName)
	sess.AddFlash(msg, kind)
	sess.Save(r, w)
}

// PopFlashes consumes the queued banners. They survive exactly one render.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) (successes, errors []string) {
	sess, _ := m.store.Get(r, cookieName)
	for _, f := range sess.Flashes(flashSuccess) {
		if msg, ok := f.(string); ok {
			successes = append(successes, msg)
		}
	}
	for _, f := range sess.Flashes(flashError) {
		if msg, ok := f.(string); ok {
			errors = append(errors, msg)
		}
	}
	sess.Save(r, w)
	return successes, errors
}

// CSRFToken returns the anti-forgery token bound to this session,
// generating one on first use.
func (m *Manager) CSRFToken(w http.ResponseWriter, r *http.Request) string {
	sess, _ := m.store.Get(r, cookieName)
	if token, ok := sess.Values[keyCSRF].(string); ok && token != "" {
		return token
	}

	token := hex.EncodeToString(securecookie.GenerateRandomKey(32))
	sess.Values[keyCSRF] = token
	sess.Save(r, w)
	return token
}

// VerifyCSRF checks a submitted token against the session-bound one.
func (m *Manager) VerifyCSRF(r *http.Request, token string) bool {
	sess, _ := m.store.Get(r, cookieName)
	want, ok := sess.Values[keyCSRF].(string)
	return ok && want != "" && token == want
}
