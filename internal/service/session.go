package service

import (
	"sync"

	"github.com/YabaiTech/YAPM/internal/vault"
	"github.com/YabaiTech/YAPM/models"
)

// Session is one logged-in account with its vault open.
//
// The CLI and the background sync job share a session; every access to
// Vault goes through WithVault so that a sync, which closes and reopens the
// vault, never runs concurrently with a vault operation.
type Session struct {
	Account   models.Account
	VaultPath string

	mu       sync.Mutex
	vault    *vault.Store
	password string
}

// NewSession wraps an opened and verified vault. password is kept to
// reopen the vault after a sync.
func NewSession(account models.Account, vaultPath string, v *vault.Store, password string) *Session {
	return &Session{
		Account:   account,
		VaultPath: vaultPath,
		vault:     v,
		password:  password,
	}
}

// WithVault runs fn with the open vault while holding the session lock.
// It returns ErrSessionClosed after Logout.
func (s *Session) WithVault(fn func(v *vault.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vault == nil {
		return ErrSessionClosed
	}
	return fn(s.vault)
}

// Active reports whether the session still holds an open vault.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vault != nil
}
