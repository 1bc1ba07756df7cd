package auth

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "session_token"

// Sessions is an in-memory session store mapping opaque tokens to user IDs.
type Sessions struct {
	mu     sync.RWMutex
	tokens map[string]int64
}

func NewSessions() *Sessions {
	return &Sessions{tokens: make(map[string]int64)}
}

func (s *Sessions) Create(userID int64) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
	return token
}

func (s *Sessions) UserID(token string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	return id, ok
}

func (s *Sessions) Destroy(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// UserIDFromRequest resolves the session cookie on r to a user ID.
func (s *Sessions) UserIDFromRequest(r *http.Request) (int64, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return 0, false
	}
	return s.UserID(c.Value)
}

// SetCookie attaches a session cookie for token to the response.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
