package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xek-YP/ya-note/internal/models"
)

var (
	author = &models.User{ID: 1, Username: "Автор"}
	reader = &models.User{ID: 2, Username: "Читатель"}
	note   = &models.Note{ID: 1, AuthorID: 1, Title: "Заголовок", Slug: "zagolovok"}
)

func TestAnonymousAlwaysRedirected(t *testing.T) {
	ops := []Operation{OpList, OpAdd, OpDetail, OpEdit, OpDelete, OpSuccess}
	for _, op := range ops {
		assert.Equal(t, RedirectLogin, Authorize(nil, op, note))
		assert.Equal(t, RedirectLogin, Authorize(nil, op, nil))
	}
}

func TestAuthenticatedCollectionOps(t *testing.T) {
	for _, op := range []Operation{OpList, OpAdd, OpSuccess} {
		assert.Equal(t, Allow, Authorize(reader, op, nil))
	}
}

func TestAuthorAllowedOnOwnNote(t *testing.T) {
	for _, op := range []Operation{OpDetail, OpEdit, OpDelete} {
		assert.Equal(t, Allow, Authorize(author, op, note))
	}
}

func TestOtherUserDeniedAsNotFound(t *testing.T) {
	for _, op := range []Operation{OpDetail, OpEdit, OpDelete} {
		assert.Equal(t, DenyNotFound, Authorize(reader, op, note))
	}
}

func TestMissingNoteDeniedAsNotFound(t *testing.T) {
	for _, op := range []Operation{OpDetail, OpEdit, OpDelete} {
		assert.Equal(t, DenyNotFound, Authorize(author, op, nil))
	}
}
