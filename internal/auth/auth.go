// Package auth is the authorization gate for the single demo
// credential. Board components treat it as an opaque collaborator; it
// owns the persisted user record and the remember-me flag.
package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/storage"
)

// Manager checks credentials and tracks the session's user.
type Manager struct {
	mu       sync.Mutex
	gateway  *storage.Gateway
	email    string
	password string
	user     *domain.User
}

// New creates a Manager for the configured credential pair. The saved
// user is restored only when the remember-me flag is set.
func New(ctx context.Context, gateway *storage.Gateway, email, password string) *Manager {
	m := &Manager{
		gateway:  gateway,
		email:    email,
		password: password,
	}

	if saved := gateway.LoadUser(ctx); saved != nil && gateway.RememberMe(ctx) {
		m.user = saved
		slog.Info("session restored", "email", saved.Email)
	}

	return m
}

// Login checks the credential pair and, on success, persists the user
// record and the remember-me flag. Write failures are best-effort:
// the in-memory session is established either way.
func (m *Manager) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.User, error) {
	if email != m.email || password != m.password {
		return nil, domain.ErrInvalidCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user := &domain.User{Email: email}
	m.user = user

	if err := m.gateway.SaveUser(ctx, user); err != nil {
		slog.Warn("user write failed", "error", err)
	}
	if err := m.gateway.SetRememberMe(ctx, rememberMe); err != nil {
		slog.Warn("remember-me write failed", "error", err)
	}

	slog.Info("user logged in", "email", email, "remember_me", rememberMe)

	return user, nil
}

// Logout ends the session and clears the persisted user record.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = nil

	if err := m.gateway.RemoveUser(ctx); err != nil {
		slog.Warn("user record removal failed", "error", err)
	}
	if err := m.gateway.SetRememberMe(ctx, false); err != nil {
		slog.Warn("remember-me write failed", "error", err)
	}

	slog.Info("user logged out")
}

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Authenticated reports whether a user is logged in.
func (m *Manager) Authenticated() bool {
	return m.CurrentUser() != nil
}
