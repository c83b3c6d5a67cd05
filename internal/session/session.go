// Package session persists the bearer token across runs in a flat
// key-value file and tracks the authenticated user for the current run.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/benlang/jobdetector/internal/models"
)

// Session holds the bearer token and the in-memory user profile. The token
// survives restarts via the store file; the user is refreshed by a who-am-I
// call at startup. No token means no user.
type Session struct {
	path  string
	token string

	// User is set after a successful who-am-I or login and cleared when the
	// token is evicted.
	User *models.User
}

// storeFile is the on-disk shape: a flat string-to-string map so that other
// keys can be added without a migration.
type storeFile struct {
	Values map[string]string `json:"values"`
}

const tokenKey = "token"

// New opens the session store at path, loading any persisted token.
// A missing store file is not an error; it means no session.
func New(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session store: %w", err)
	}

	var sf storeFile
	if err := json.Unmarshal(data, &sf); err != nil {
		// A corrupt store downgrades to an unauthenticated session.
		return s, nil
	}
	s.token = sf.Values[tokenKey]
	return s, nil
}

// Token returns the persisted bearer token, or "" when unauthenticated.
func (s *Session) Token() string {
	return s.token
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.token != ""
}

// SetToken stores a new bearer token and persists it.
func (s *Session) SetToken(token string) error {
	s.token = token
	return s.save()
}

// Evict drops the token and the in-memory user, removing the persisted
// entry. Used on logout and on a rejected who-am-I check.
func (s *Session) Evict() error {
	s.token = ""
	s.User = nil
	return s.save()
}

func (s *Session) save() error {
	sf := storeFile{Values: map[string]string{}}
	if s.token != "" {
		sf.Values[tokenKey] = s.token
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session store: %w", err)
	}
	return nil
}

// DefaultPath returns the session store location under the user's config
// directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "jobdetector", "session.json")
}
