package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/remote"
	"github.com/markargand/labourlog/internal/storage"
)

// Session owns the in-memory state snapshot and the store it is persisted to.
// Every mutation is applied to a clone, saved, and only then swapped in, so a
// failed save leaves the snapshot untouched.
type Session struct {
	mu    sync.Mutex
	store storage.Store
	state storage.State
	auth  *remote.Auth

	// Now returns the current time. Tests replace it.
	Now func() time.Time
	// NewID returns a fresh entity id. Tests replace it.
	NewID func() string
}

// NewSession loads the state from store. When the store is empty the state
// starts from defaults.
func NewSession(store storage.Store, defaults entry.Settings) (*Session, error) {
	raw, err := store.ReadRaw()
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	st, err := storage.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode state at %s: %w", store.Location(), err)
	}
	if raw == nil && defaults.Validate() == nil {
		st.Settings = defaults
	}

	return &Session{
		store: store,
		state: st,
		Now:   time.Now,
		NewID: uuid.NewString,
	}, nil
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() storage.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Store returns the backing store.
func (s *Session) Store() storage.Store {
	return s.store
}

// update applies fn to a clone of the state, persists the result and swaps
// it in. When backup is set the stored state is snapshotted first.
func (s *Session) update(backup bool, fn func(st *storage.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}

	if backup {
		if err := s.store.Backup(); err != nil {
			return fmt.Errorf("failed to back up state: %w", err)
		}
	}
	if err := storage.Save(s.store, next); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	s.state = next
	return nil
}

// reload re-reads the state from the store.
func (s *Session) reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := storage.Load(s.store)
	if err != nil {
		return err
	}
	s.state = st
	return nil
}

// Auth returns the signed-in account, or nil.
func (s *Session) Auth() *remote.Auth {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.auth == nil {
		return nil
	}
	a := *s.auth
	return &a
}

func (s *Session) setAuth(a *remote.Auth) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = a
}

// Close closes the backing store.
func (s *Session) Close() error {
	return s.store.Close()
}
