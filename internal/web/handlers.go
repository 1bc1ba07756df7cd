package web

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Xek-YP/ya-note/internal/auth"
	"github.com/Xek-YP/ya-note/internal/models"
	"github.com/Xek-YP/ya-note/internal/store"
)

// Handlers serves all pages of the application.
type Handlers struct {
	store    store.Store
	sessions *auth.Sessions
	renderer *Renderer
}

func NewHandlers(st store.Store, sessions *auth.Sessions) (*Handlers, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Handlers{store: st, sessions: sessions, renderer: renderer}, nil
}

// Routes returns the route table. Callers wrap it with the auth and logging
// middleware.
func (h *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /auth/login/{$}", h.LoginForm)
	mux.HandleFunc("POST /auth/login/{$}", h.Login)
	mux.HandleFunc("POST /auth/logout/{$}", h.Logout)
	mux.HandleFunc("GET /auth/signup/{$}", h.SignupForm)
	mux.HandleFunc("POST /auth/signup/{$}", h.Signup)

	mux.HandleFunc("GET /notes/{$}", h.List)
	mux.HandleFunc("GET /add/{$}", h.AddForm)
	mux.HandleFunc("POST /add/{$}", h.Add)
	mux.HandleFunc("GET /done/{$}", h.Success)
	mux.HandleFunc("GET /note/{slug}/{$}", h.Detail)
	mux.HandleFunc("GET /edit/{slug}/{$}", h.EditForm)
	mux.HandleFunc("POST /edit/{slug}/{$}", h.Edit)
	mux.HandleFunc("GET /delete/{slug}/{$}", h.DeleteConfirm)
	mux.HandleFunc("POST /delete/{slug}/{$}", h.Delete)
	mux.HandleFunc("POST /notes/ask/{$}", h.Ask)

	return mux
}

func (h *Handlers) render(w http.ResponseWriter, status int, name string, data any) {
	if err := h.renderer.Render(w, status, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

type homePage struct {
	User *models.User
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home.html", homePage{User: auth.UserFromContext(r.Context())})
}

type loginPage struct {
	User     *models.User
	Next     string
	Username string
	Error    string
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "auth/login.html", loginPage{
		User: auth.UserFromContext(r.Context()),
		Next: r.URL.Query().Get("next"),
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	next := r.PostFormValue("next")

	user, err := h.store.GetUserByUsername(username)
	if err != nil || !auth.CheckPassword(user.PasswordHash, password) {
		h.render(w, http.StatusOK, "auth/login.html", loginPage{
			Next:     next,
			Username: username,
			Error:    "Неверный логин или пароль.",
		})
		return
	}

	auth.SetCookie(w, h.sessions.Create(user.ID))
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/notes/"
}

type loggedOutPage struct {
	User *models.User
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(auth.SessionCookie); err == nil {
		h.sessions.Destroy(c.Value)
	}
	auth.ClearCookie(w)
	h.render(w, http.StatusOK, "auth/logged_out.html", loggedOutPage{})
}

type signupPage struct {
	User     *models.User
	Username string
	Error    string
}

func (h *Handlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "auth/signup.html", signupPage{
		User: auth.UserFromContext(r.Context()),
	})
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	if username == "" || password == "" {
		h.render(w, http.StatusOK, "auth/signup.html", signupPage{
			Username: username,
			Error:    "Логин и пароль обязательны.",
		})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := h.store.CreateUser(username, hash); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			h.render(w, http.StatusOK, "auth/signup.html", signupPage{
				Username: username,
				Error:    "Пользователь с таким логином уже существует.",
			})
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/auth/login/", http.StatusFound)
}
