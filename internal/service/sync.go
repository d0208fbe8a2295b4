package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/remote"
	"github.com/markargand/labourlog/internal/storage"
)

// SyncService talks to the remote backend.
type SyncService struct {
	session  *Session
	override string

	// HTTP replaces the client's transport. Tests point it at a fake backend.
	HTTP *http.Client
}

// NewSyncService creates a new SyncService. A non-empty apiBase overrides the
// base URL stored in the state without persisting it.
func NewSyncService(session *Session, apiBase string) *SyncService {
	return &SyncService{session: session, override: remote.TrimBase(apiBase)}
}

// APIBase returns the base URL requests are sent to.
func (s *SyncService) APIBase() string {
	if s.override != "" {
		return s.override
	}
	return remote.TrimBase(s.session.Snapshot().APIBase)
}

// SetAPIBase stores a new base URL in the state and clears any override.
func (s *SyncService) SetAPIBase(base string) error {
	base = remote.TrimBase(base)
	if base == "" {
		base = storage.DefaultAPIBase
	}
	err := s.session.update(false, func(st *storage.State) error {
		st.APIBase = base
		return nil
	})
	if err == nil {
		s.override = ""
	}
	return err
}

func (s *SyncService) client() *remote.Client {
	c := remote.NewClient(s.APIBase())
	if s.HTTP != nil {
		c.HTTP = s.HTTP
	}
	return c
}

// Health returns the backend's /health response.
func (s *SyncService) Health(ctx context.Context) (string, error) {
	return s.client().Health(ctx)
}

// Login signs in and keeps the account in memory for this session only.
// The token is never persisted.
func (s *SyncService) Login(ctx context.Context, username, password string) (remote.Auth, error) {
	auth, err := s.client().Login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return remote.Auth{}, err
	}
	s.session.setAuth(&auth)
	return auth, nil
}

// Pull replaces the local entries with the backend's. On any error the local
// state is left untouched. The stored state is backed up before replacing.
func (s *SyncService) Pull(ctx context.Context) (int, error) {
	fetched, err := s.client().FetchEntries(ctx)
	if err != nil {
		return 0, err
	}

	err = s.session.update(true, func(st *storage.State) error {
		st.Entries = append([]entry.TimeEntry{}, fetched...)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(fetched), nil
}

// Push uploads every local entry.
func (s *SyncService) Push(ctx context.Context) (int, error) {
	entries := s.session.Snapshot().Entries
	if err := s.client().PushEntries(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}
