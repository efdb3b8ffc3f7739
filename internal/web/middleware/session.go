package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	sessionCookieName = "tablomester_session"
	sessionDuration   = 24 * time.Hour
	cleanupInterval   = time.Hour
)

// Session represents a user session
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"` // gallery access token
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StoredSession is the persisted form of a session.
type StoredSession struct {
	ID        string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionRepository persists sessions so logins survive a server restart.
type SessionRepository interface {
	Save(ctx context.Context, s *StoredSession) error
	Get(ctx context.Context, sessionID string) (*StoredSession, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionManager handles session creation and validation. Sessions live in
// memory; when a repository is configured they are also persisted and
// restored on cache miss.
type SessionManager struct {
	secret   []byte
	sessions map[string]*Session
	repo     SessionRepository
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager. The repository may be nil
// for memory-only operation.
func NewSessionManager(secret string, repo SessionRepository) *SessionManager {
	// Use a default secret if none provided (for development)
	if secret == "" {
		secret = "tablomester-dev-secret-change-in-production"
	}
	return &SessionManager{
		secret:   []byte(secret),
		sessions: make(map[string]*Session),
		repo:     repo,
	}
}

// CreateSession creates a new session for a user
func (sm *SessionManager) CreateSession(token string) (*Session, error) {
	idBytes := make([]byte, 32)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, err
	}
	sessionID := base64.URLEncoding.EncodeToString(idBytes)

	session := &Session{
		ID:        sessionID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(sessionDuration),
	}

	sm.mu.Lock()
	sm.sessions[sessionID] = session
	sm.mu.Unlock()

	if sm.repo != nil {
		stored := StoredSession(*session)
		if err := sm.repo.Save(context.Background(), &stored); err != nil {
			log.Printf("could not persist session: %v", err)
		}
	}

	return session, nil
}

// GetSession retrieves a session by ID
func (sm *SessionManager) GetSession(sessionID string) *Session {
	sm.mu.RLock()
	session, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()

	if !ok && sm.repo != nil {
		stored, err := sm.repo.Get(context.Background(), sessionID)
		if err != nil {
			log.Printf("could not load session: %v", err)
			return nil
		}
		if stored == nil {
			return nil
		}
		restored := Session(*stored)
		session = &restored

		sm.mu.Lock()
		sm.sessions[sessionID] = session
		sm.mu.Unlock()
		ok = true
	}

	if !ok {
		return nil
	}

	if time.Now().After(session.ExpiresAt) {
		go sm.DeleteSession(sessionID)
		return nil
	}

	return session
}

// DeleteSession removes a session
func (sm *SessionManager) DeleteSession(sessionID string) {
	sm.mu.Lock()
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()

	if sm.repo != nil {
		if err := sm.repo.Delete(context.Background(), sessionID); err != nil {
			log.Printf("could not delete persisted session: %v", err)
		}
	}
}

// StartCleanup periodically drops expired sessions until ctx is cancelled.
func (sm *SessionManager) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sm.cleanupExpired(ctx)
			}
		}
	}()
}

func (sm *SessionManager) cleanupExpired(ctx context.Context) {
	now := time.Now()

	sm.mu.Lock()
	for id, s := range sm.sessions {
		if now.After(s.ExpiresAt) {
			delete(sm.sessions, id)
		}
	}
	sm.mu.Unlock()

	if sm.repo != nil {
		if count, err := sm.repo.DeleteExpired(ctx); err != nil {
			log.Printf("could not clean up persisted sessions: %v", err)
		} else if count > 0 {
			log.Printf("removed %d expired sessions", count)
		}
	}
}

// SetSessionCookie sets the session cookie on the response
func (sm *SessionManager) SetSessionCookie(w http.ResponseWriter, session *Session) {
	signature := sm.signData(session.ID)
	cookieValue := session.ID + "." + signature

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    cookieValue,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionDuration.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie
func (sm *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// GetSessionFromRequest extracts the session from a request
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) *Session {
	// Try cookie first
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil {
		parts := strings.SplitN(cookie.Value, ".", 2)
		if len(parts) == 2 {
			sessionID := parts[0]
			signature := parts[1]
			if sm.verifySignature(sessionID, signature) {
				if session := sm.GetSession(sessionID); session != nil {
					return session
				}
			}
		}
	}

	// Try Authorization header
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		sessionID := strings.TrimPrefix(authHeader, "Bearer ")
		if session := sm.GetSession(sessionID); session != nil {
			return session
		}
	}

	return nil
}

// signData creates an HMAC signature for data
func (sm *SessionManager) signData(data string) string {
	h := hmac.New(sha256.New, sm.secret)
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies an HMAC signature
func (sm *SessionManager) verifySignature(data, signature string) bool {
	expected := sm.signData(data)
	return hmac.Equal([]byte(signature), []byte(expected))
}

type contextKey string

const sessionContextKey contextKey = "session"

// RequireAuth rejects requests that carry no valid session. The session is
// placed on the request context for downstream handlers.
func RequireAuth(sm *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sm.GetSessionFromRequest(r)
			if session == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
		})
	}
}

// GetSessionFromContext returns the session stored by RequireAuth, or nil.
func GetSessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionContextKey).(*Session)
	return session
}

// SetSessionInContext returns a context carrying the session.
func SetSessionInContext(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionData is a helper struct for JSON responses
type SessionData struct {
	SessionID string `json:"session_id"`
	ExpiresAt string `json:"expires_at"`
}

// ToJSON returns the session data for JSON response
func (s *Session) ToJSON() SessionData {
	return SessionData{
		SessionID: s.ID,
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
	}
}

// MarshalJSON implements json.Marshaler (excludes sensitive fields)
func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToJSON())
}
