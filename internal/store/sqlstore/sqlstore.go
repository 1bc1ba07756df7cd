package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Xek-YP/ya-note/internal/models"
	"github.com/Xek-YP/ya-note/internal/store"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// DBType represents the type of database
type DBType string

const (
	SQLite   DBType = "sqlite3"
	Postgres DBType = "postgres"
)

// SQLStore implements the Store interface for SQL databases
type SQLStore struct {
	db     *sql.DB
	dbType DBType
}

var _ store.Store = (*SQLStore)(nil)

// New creates a new SQLStore with the given driver and connection string
func New(driver, connStr string) (*SQLStore, error) {
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLStore{
		db:     db,
		dbType: DBType(driver),
	}

	// SQLite allows one writer; a single pooled connection avoids
	// SQLITE_BUSY under concurrent transactions.
	if s.dbType == SQLite {
		db.SetMaxOpenConns(1)
	}

	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dbType == SQLite {
		return query
	}
	var result strings.Builder
	argNum := 1
	for _, c := range query {
		if c == '?' {
			result.WriteString(fmt.Sprintf("$%d", argNum))
			argNum++
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

func (s *SQLStore) initSchema() error {
	var createUsersTable, createNotesTable string

	if s.dbType == Postgres {
		createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		);`

		createNotesTable = `
		CREATE TABLE IF NOT EXISTS notes (
			id SERIAL PRIMARY KEY,
			author_id INTEGER NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			text TEXT NOT NULL DEFAULT '',
			slug TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL
		);`
	} else {
		createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		);`

		createNotesTable = `
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			author_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			text TEXT NOT NULL DEFAULT '',
			slug TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(author_id) REFERENCES users(id)
		);`
	}

	if _, err := s.db.Exec(createUsersTable); err != nil {
		return err
	}
	if _, err := s.db.Exec(createNotesTable); err != nil {
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a unique-constraint failure from
// either driver.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// User functions

func (s *SQLStore) CreateUser(username, passwordHash string) (int64, error) {
	if s.dbType == Postgres {
		var id int64
		err := s.db.QueryRow(
			s.rebind("INSERT INTO users (username, password_hash) VALUES (?, ?) RETURNING id"),
			username, passwordHash).Scan(&id)
		if isUniqueViolation(err) {
			return 0, store.ErrUsernameTaken
		}
		return id, err
	}

	result, err := s.db.Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, passwordHash)
	if isUniqueViolation(err) {
		return 0, store.ErrUsernameTaken
	}
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLStore) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		s.rebind("SELECT id, username, password_hash FROM users WHERE username = ?"),
		username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) GetUserByID(id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		s.rebind("SELECT id, username, password_hash FROM users WHERE id = ?"),
		id).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLStore) GetUserID(username string) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		s.rebind("SELECT id FROM users WHERE username = ?"), username).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, store.ErrNotFound
	}
	return id, err
}

// Note functions

// CreateNote inserts a note. The slug-uniqueness check and the insert run in
// one transaction; the UNIQUE index on notes.slug is the backstop for racers,
// so concurrent creates with the same slug yield exactly one success.
func (s *SQLStore) CreateNote(authorID int64, title, text, slug string) (*models.Note, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(
		s.rebind("SELECT EXISTS(SELECT 1 FROM notes WHERE slug = ?)"), slug).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, store.ErrDuplicateSlug
	}

	createdAt := time.Now().UTC()
	var id int64
	if s.dbType == Postgres {
		err = tx.QueryRow(
			s.rebind("INSERT INTO notes (author_id, title, text, slug, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id"),
			authorID, title, text, slug, createdAt).Scan(&id)
	} else {
		var result sql.Result
		result, err = tx.Exec(
			"INSERT INTO notes (author_id, title, text, slug, created_at) VALUES (?, ?, ?, ?, ?)",
			authorID, title, text, slug, createdAt)
		if err == nil {
			id, err = result.LastInsertId()
		}
	}
	if isUniqueViolation(err) {
		return nil, store.ErrDuplicateSlug
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateSlug
		}
		return nil, err
	}

	return &models.Note{
		ID:        id,
		AuthorID:  authorID,
		Title:     title,
		Text:      text,
		Slug:      slug,
		CreatedAt: createdAt,
	}, nil
}

// UpdateNote rewrites title, text, and slug of an existing note under the
// same transactional uniqueness guarantee as CreateNote.
func (s *SQLStore) UpdateNote(noteID int64, title, text, slug string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(
		s.rebind("SELECT EXISTS(SELECT 1 FROM notes WHERE slug = ? AND id <> ?)"),
		slug, noteID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return store.ErrDuplicateSlug
	}

	result, err := tx.Exec(
		s.rebind("UPDATE notes SET title = ?, text = ?, slug = ? WHERE id = ?"),
		title, text, slug, noteID)
	if isUniqueViolation(err) {
		return store.ErrDuplicateSlug
	}
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (s *SQLStore) DeleteNote(noteID int64) error {
	result, err := s.db.Exec(s.rebind("DELETE FROM notes WHERE id = ?"), noteID)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *SQLStore) GetNoteBySlug(slug string) (*models.Note, error) {
	var n models.Note
	err := s.db.QueryRow(
		s.rebind("SELECT id, author_id, title, text, slug, created_at FROM notes WHERE slug = ?"),
		slug).Scan(&n.ID, &n.AuthorID, &n.Title, &n.Text, &n.Slug, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *SQLStore) ListNotesByAuthor(authorID int64) ([]models.Note, error) {
	rows, err := s.db.Query(
		s.rebind("SELECT id, author_id, title, text, slug, created_at FROM notes WHERE author_id = ? ORDER BY id ASC"),
		authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.AuthorID, &n.Title, &n.Text, &n.Slug, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *SQLStore) SlugTaken(slug string, excludeNoteID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		s.rebind("SELECT EXISTS(SELECT 1 FROM notes WHERE slug = ? AND id <> ?)"),
		slug, excludeNoteID).Scan(&exists)
	return exists, err
}

func (s *SQLStore) CountNotes() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count)
	return count, err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
