// Package credential persists the bearer token issued by the backend.
//
// The browser build kept the token in a same-site cookie named "jwt" with a
// one-day expiry; the terminal client keeps the equivalent record in a file
// under the application home directory. The API client reads it on every
// call, so replacing the file takes effect on the next request.
package credential

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// TTL mirrors the one-day lifetime of the browser cookie.
const TTL = 24 * time.Hour

// Source is the read/write surface over the stored credential.
//
// Token reports the current token; an expired or missing record reads as
// absent. Save stores a freshly issued token with a new expiry. Clear
// removes the record (logout).
type Source interface {
	Token() (string, bool)
	Save(token string) error
	Clear() error
}

// FileStore keeps the credential in <dir>/jwt as a small JSON record.
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "jwt")}
}

type record struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return "", false
	}
	if r.Token == "" || time.Now().After(r.ExpiresAt) {
		return "", false
	}
	return r.Token, true
}

func (s *FileStore) Save(token string) error {
	data, err := json.Marshal(record{Token: token, ExpiresAt: time.Now().Add(TTL)})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
