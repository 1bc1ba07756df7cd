package web

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xek-YP/ya-note/internal/models"
)

func TestPagesAvailabilityForAnonymous(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/", "/auth/login/", "/auth/signup/"} {
		w := app.get(path, nil)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}

	// Logout is POST-only and available to everyone.
	w := app.postForm("/auth/logout/", nil, url.Values{})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPagesAvailabilityForAuthUser(t *testing.T) {
	app := newTestApp(t)
	reader := app.createUser("Читатель")

	for _, path := range []string{"/notes/", "/add/", "/done/"} {
		w := app.get(path, reader)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}

// The author gets the page; any other user gets "page not found" with no
// hint that the note exists.
func TestAvailabilityForNoteEditAndDelete(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser("Автор")
	reader := app.createUser("Читатель")
	note := app.createNote(author, "Заголовок", "Текст", "zagolovok")

	cases := []struct {
		name   string
		user   *models.User
		status int
	}{
		{"author", author, http.StatusOK},
		{"reader", reader, http.StatusNotFound},
	}
	for _, tc := range cases {
		for _, path := range []string{
			"/note/" + note.Slug + "/",
			"/edit/" + note.Slug + "/",
			"/delete/" + note.Slug + "/",
		} {
			w := app.get(path, tc.user)
			assert.Equal(t, tc.status, w.Code, "%s GET %s", tc.name, path)
		}
	}
}

func TestRedirectForAnonymousClient(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser("Автор")
	note := app.createNote(author, "Заголовок", "Текст", "zagolovok")

	paths := []string{
		"/add/",
		"/edit/" + note.Slug + "/",
		"/note/" + note.Slug + "/",
		"/delete/" + note.Slug + "/",
		"/notes/",
		"/done/",
	}
	for _, path := range paths {
		w := app.get(path, nil)
		assert.Equal(t, http.StatusFound, w.Code, "GET %s", path)
		assert.Equal(t, "/auth/login/?next="+path, w.Header().Get("Location"), "GET %s", path)
	}
}

func TestNonexistentNoteIsNotFound(t *testing.T) {
	app := newTestApp(t)
	reader := app.createUser("Читатель")

	for _, path := range []string{"/note/missing/", "/edit/missing/", "/delete/missing/"} {
		w := app.get(path, reader)
		assert.Equal(t, http.StatusNotFound, w.Code, "GET %s", path)
	}
}
