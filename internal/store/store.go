package store

import (
	"errors"

	"github.com/Xek-YP/ya-note/internal/models"
)

var (
	// ErrDuplicateSlug is returned when a create or update would leave two
	// notes with the same slug.
	ErrDuplicateSlug = errors.New("slug already in use")

	// ErrNotFound is returned for lookups that match nothing.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken is returned when signup collides with an existing
	// username.
	ErrUsernameTaken = errors.New("username already taken")
)

// Store defines the interface for all database operations
type Store interface {
	// Users
	CreateUser(username, passwordHash string) (int64, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserID(username string) (int64, error)

	// Notes
	CreateNote(authorID int64, title, text, slug string) (*models.Note, error)
	UpdateNote(noteID int64, title, text, slug string) error
	DeleteNote(noteID int64) error
	GetNoteBySlug(slug string) (*models.Note, error)
	ListNotesByAuthor(authorID int64) ([]models.Note, error)
	SlugTaken(slug string, excludeNoteID int64) (bool, error)
	CountNotes() (int64, error)

	Close() error
}
