package hatchclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/hatchsocial/hatchclient/storage"
)

// Session is the signed-in administrator: a bearer token and the user
// record returned at login. It is persisted under KeyToken and KeyUser.
type Session struct {
	mu    sync.RWMutex
	token string
	user  json.RawMessage
	store storage.Store
}

func newSession(store storage.Store) *Session {
	return &Session{store: store}
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the stored user record, or nil when signed out.
func (s *Session) User() json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Set replaces the session and persists it.
func (s *Session) Set(ctx context.Context, token string, user json.RawMessage) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	if err := s.store.Set(ctx, KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	if len(user) == 0 {
		user = json.RawMessage("{}")
	}
	if err := s.store.Set(ctx, KeyUser, user); err != nil {
		return fmt.Errorf("persist session user: %w", err)
	}
	return nil
}

// Clear signs out locally. The in-memory session is always cleared, even
// when removing the persisted copy fails.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	var result *multierror.Error
	if err := s.store.Delete(ctx, KeyToken); err != nil {
		result = multierror.Append(result, fmt.Errorf("delete session token: %w", err))
	}
	if err := s.store.Delete(ctx, KeyUser); err != nil {
		result = multierror.Append(result, fmt.Errorf("delete session user: %w", err))
	}
	return result.ErrorOrNil()
}

// Load restores a persisted session. A missing session is not an error.
func (s *Session) Load(ctx context.Context) error {
	token, err := s.store.Get(ctx, KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}

	user, err := s.store.Get(ctx, KeyUser)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("load session user: %w", err)
	}

	s.mu.Lock()
	s.token = string(token)
	s.user = user
	s.mu.Unlock()
	return nil
}
