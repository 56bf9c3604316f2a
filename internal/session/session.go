// Package session tracks which user is logged in.
//
// The state is a single persisted document under the loggedInUser key,
// re-derivable at any time by re-reading that key. The Manager is an
// explicit handle initialized once at startup and passed to callers;
// there is no package-global state.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/roach88/stockpile/internal/model"
	"github.com/roach88/stockpile/internal/store"
)

// Manager holds the current login state, backed by the store.
type Manager struct {
	store *store.Store

	mu       sync.Mutex
	user     model.User
	loggedIn bool
}

// NewManager creates a Manager over an open store. Call Init before use.
func NewManager(st *store.Store) *Manager {
	return &Manager{store: st}
}

// Init loads the persisted login state. An absent key means logged out;
// a corrupt document is treated the same way so startup never fails on
// bad session data.
func (m *Manager) Init(ctx context.Context) error {
	data, ok, err := m.store.Get(ctx, model.KeyLoggedInUser)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !ok {
		m.loggedIn = false
		m.user = model.User{}
		return nil
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		m.loggedIn = false
		m.user = model.User{}
		return nil
	}

	m.user = u
	m.loggedIn = true
	return nil
}

// Current returns the logged-in user, if any.
func (m *Manager) Current() (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.loggedIn
}

// SetUser persists u as the logged-in user and caches it.
func (m *Manager) SetUser(ctx context.Context, u model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := m.store.Set(ctx, model.KeyLoggedInUser, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
	m.loggedIn = true
	return nil
}

// Clear logs out: removes the persisted key and drops the cached user.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Remove(ctx, model.KeyLoggedInUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = model.User{}
	m.loggedIn = false
	return nil
}
