// Package session holds the in-memory authentication state of the running
// client: who is signed in, if anyone. The store is the only mutable state
// shared between the startup bootstrap and the interactive screens.
package session

import (
	"sync"

	"github.com/nomad-tales/nomadtales/internal/models"
)

// State is a snapshot of the session. IsAuthenticated is true exactly when
// User is non-nil; the two fields always change together.
type State struct {
	User            *models.User
	IsAuthenticated bool
}

// Store is the authoritative session record. It has exactly two mutators,
// SetAuthenticated and ClearAuthenticated, and one reader, Current.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{}
}

// SetAuthenticated records u as the signed-in identity.
func (s *Store) SetAuthenticated(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := u
	s.state = State{User: &user, IsAuthenticated: true}
}

// ClearAuthenticated resets the store to the signed-out state.
func (s *Store) ClearAuthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
}

// Current returns a copy of the session state. Readers never observe a
// half-updated state and cannot mutate the store through the returned value.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return State{}
	}
	user := *s.state.User
	return State{User: &user, IsAuthenticated: s.state.IsAuthenticated}
}
