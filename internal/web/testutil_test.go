package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Xek-YP/ya-note/internal/auth"
	"github.com/Xek-YP/ya-note/internal/middleware"
	"github.com/Xek-YP/ya-note/internal/models"
	"github.com/Xek-YP/ya-note/internal/store/sqlstore"
)

// testApp wires the handlers with the same middleware chain the server uses,
// over a throwaway SQLite database.
type testApp struct {
	t        *testing.T
	store    *sqlstore.SQLStore
	sessions *auth.Sessions
	handler  http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	st, err := sqlstore.New("sqlite3", filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sessions := auth.NewSessions()
	handlers, err := NewHandlers(st, sessions)
	require.NoError(t, err)

	return &testApp{
		t:        t,
		store:    st,
		sessions: sessions,
		handler:  middleware.Auth(sessions, st, handlers.Routes()),
	}
}

func (a *testApp) createUser(username string) *models.User {
	a.t.Helper()
	hash, err := auth.HashPassword("password")
	require.NoError(a.t, err)
	id, err := a.store.CreateUser(username, hash)
	require.NoError(a.t, err)
	return &models.User{ID: id, Username: username}
}

func (a *testApp) createNote(author *models.User, title, text, slug string) *models.Note {
	a.t.Helper()
	note, err := a.store.CreateNote(author.ID, title, text, slug)
	require.NoError(a.t, err)
	return note
}

// sessionCookie force-logs user in, as the original suite does with
// force_login.
func (a *testApp) sessionCookie(user *models.User) *http.Cookie {
	return &http.Cookie{Name: auth.SessionCookie, Value: a.sessions.Create(user.ID)}
}

// get performs a GET as user; a nil user is anonymous.
func (a *testApp) get(path string, user *models.User) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != nil {
		req.AddCookie(a.sessionCookie(user))
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

// postForm performs a form POST as user; a nil user is anonymous.
func (a *testApp) postForm(path string, user *models.User, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		req.AddCookie(a.sessionCookie(user))
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testApp) countNotes() int64 {
	a.t.Helper()
	count, err := a.store.CountNotes()
	require.NoError(a.t, err)
	return count
}

func body(w *httptest.ResponseRecorder) string {
	return w.Body.String()
}
