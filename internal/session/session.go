package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the explicit admin session context: a bearer token with a
// login/logout lifecycle, persisted so consecutive CLI invocations stay
// authenticated. It replaces ambient global storage - components that need
// authenticated calls receive the session, nothing reads it implicitly.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
}

type sessionFile struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// DefaultPath returns the standard session file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".medfact-session.json"
	}
	return filepath.Join(home, ".medfact", "session.json")
}

// Load reads a persisted session from path. A missing file yields an empty
// (logged-out) session, not an error.
func Load(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		// Corrupt session file: treat as logged out rather than failing
		return s, nil
	}

	s.token = f.Token
	return s, nil
}

// Token returns the current bearer token, empty when logged out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken stores a freshly issued token and persists it
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(sessionFile{Token: token, SavedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear tears the session down: token dropped, file removed. Safe to call
// when already logged out.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Valid reports whether a token is present and not past its JWT expiry.
// The signature is the backend's to verify; the client only reads exp to
// avoid sending requests doomed to 401.
func (s *Session) Valid() bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		// Opaque (non-JWT) tokens cannot be checked locally; assume valid
		// and let the backend's 401 tear the session down
		return true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Now().Before(exp.Time)
}
