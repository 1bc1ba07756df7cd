package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Xek-YP/ya-note/internal/access"
	"github.com/Xek-YP/ya-note/internal/assist"
	"github.com/Xek-YP/ya-note/internal/auth"
	"github.com/Xek-YP/ya-note/internal/middleware"
	"github.com/Xek-YP/ya-note/internal/models"
	"github.com/Xek-YP/ya-note/internal/slug"
	"github.com/Xek-YP/ya-note/internal/store"
)

const successPath = "/done/"

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, middleware.LoginPath+"?next="+r.URL.RequestURI(), http.StatusFound)
}

// authorizeNote looks up the note for the {slug} path segment and runs the
// access decision for it. It writes the response itself unless the decision
// is Allow.
func (h *Handlers) authorizeNote(w http.ResponseWriter, r *http.Request, op access.Operation) (*models.Note, bool) {
	user := auth.UserFromContext(r.Context())

	note, err := h.store.GetNoteBySlug(r.PathValue("slug"))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}

	switch access.Authorize(user, op, note) {
	case access.Allow:
		return note, true
	case access.RedirectLogin:
		redirectToLogin(w, r)
	case access.DenyNotFound:
		http.NotFound(w, r)
	}
	return nil, false
}

type listPage struct {
	User  *models.User
	Notes []models.Note
}

func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if access.Authorize(user, access.OpList, nil) != access.Allow {
		redirectToLogin(w, r)
		return
	}

	notes, err := h.store.ListNotesByAuthor(user.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, http.StatusOK, "notes/list.html", listPage{User: user, Notes: notes})
}

type successPage struct {
	User *models.User
}

func (h *Handlers) Success(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if access.Authorize(user, access.OpSuccess, nil) != access.Allow {
		redirectToLogin(w, r)
		return
	}
	h.render(w, http.StatusOK, "notes/success.html", successPage{User: user})
}

type notePage struct {
	User   *models.User
	IsEdit bool
	Action string
	Title  string
	Text   string
	Slug   string
	Errors map[string]string
}

func (h *Handlers) AddForm(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if access.Authorize(user, access.OpAdd, nil) != access.Allow {
		redirectToLogin(w, r)
		return
	}
	h.render(w, http.StatusOK, "notes/form.html", notePage{User: user, Action: "/add/"})
}

func (h *Handlers) Add(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if access.Authorize(user, access.OpAdd, nil) != access.Allow {
		redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	page := notePage{
		User:   user,
		Action: "/add/",
		Title:  strings.TrimSpace(r.PostFormValue("title")),
		Text:   r.PostFormValue("text"),
		Slug:   strings.TrimSpace(r.PostFormValue("slug")),
	}

	if page.Title == "" {
		page.Errors = map[string]string{"title": "Обязательное поле."}
		h.render(w, http.StatusOK, "notes/form.html", page)
		return
	}

	resolved, err := slug.Resolve(page.Title, page.Slug, func(s string) (bool, error) {
		return h.store.SlugTaken(s, 0)
	})
	if err != nil {
		h.renderSlugError(w, page, err)
		return
	}

	if _, err := h.store.CreateNote(user.ID, page.Title, page.Text, resolved); err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			page.Errors = map[string]string{"slug": resolved + slug.Warning}
			h.render(w, http.StatusOK, "notes/form.html", page)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, successPath, http.StatusFound)
}

// renderSlugError re-renders the note form with a field-level validation
// error, or reports a 500 for anything that is not one.
func (h *Handlers) renderSlugError(w http.ResponseWriter, page notePage, err error) {
	var ferr *slug.FieldError
	if errors.As(err, &ferr) {
		page.Errors = map[string]string{ferr.Field: ferr.Message}
		h.render(w, http.StatusOK, "notes/form.html", page)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

type detailPage struct {
	User *models.User
	Note *models.Note
}

func (h *Handlers) Detail(w http.ResponseWriter, r *http.Request) {
	note, ok := h.authorizeNote(w, r, access.OpDetail)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, "notes/detail.html", detailPage{
		User: auth.UserFromContext(r.Context()),
		Note: note,
	})
}

func (h *Handlers) EditForm(w http.ResponseWriter, r *http.Request) {
	note, ok := h.authorizeNote(w, r, access.OpEdit)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, "notes/form.html", notePage{
		User:   auth.UserFromContext(r.Context()),
		IsEdit: true,
		Action: "/edit/" + note.Slug + "/",
		Title:  note.Title,
		Text:   note.Text,
		Slug:   note.Slug,
	})
}

func (h *Handlers) Edit(w http.ResponseWriter, r *http.Request) {
	note, ok := h.authorizeNote(w, r, access.OpEdit)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	page := notePage{
		User:   auth.UserFromContext(r.Context()),
		IsEdit: true,
		Action: "/edit/" + note.Slug + "/",
		Title:  strings.TrimSpace(r.PostFormValue("title")),
		Text:   r.PostFormValue("text"),
		Slug:   strings.TrimSpace(r.PostFormValue("slug")),
	}

	if page.Title == "" {
		page.Errors = map[string]string{"title": "Обязательное поле."}
		h.render(w, http.StatusOK, "notes/form.html", page)
		return
	}

	resolved, err := slug.Resolve(page.Title, page.Slug, func(s string) (bool, error) {
		return h.store.SlugTaken(s, note.ID)
	})
	if err != nil {
		h.renderSlugError(w, page, err)
		return
	}

	if err := h.store.UpdateNote(note.ID, page.Title, page.Text, resolved); err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			page.Errors = map[string]string{"slug": resolved + slug.Warning}
			h.render(w, http.StatusOK, "notes/form.html", page)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, successPath, http.StatusFound)
}

func (h *Handlers) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	note, ok := h.authorizeNote(w, r, access.OpDelete)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, "notes/delete.html", detailPage{
		User: auth.UserFromContext(r.Context()),
		Note: note,
	})
}

func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	note, ok := h.authorizeNote(w, r, access.OpDelete)
	if !ok {
		return
	}
	if err := h.store.DeleteNote(note.ID); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, successPath, http.StatusFound)
}

type askRequest struct {
	Question string               `json:"question"`
	History  []models.ChatMessage `json:"history"`
}

// Ask answers a free-form question about the caller's notes via the Gemini
// API.
func (h *Handlers) Ask(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if access.Authorize(user, access.OpList, nil) != access.Allow {
		redirectToLogin(w, r)
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	notes, err := h.store.ListNotesByAuthor(user.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	answer, err := assist.AnalyzeNotes(r.Context(), notes, req.Question, req.History)
	if err != nil {
		http.Error(w, "Assistant unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}
