// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the client use cases: registering an account,
// logging in with reconciliation of the local and remote copies of a vault,
// and keeping an open session in sync.
//
// Services depend on the account directories (store.AccountRepository), the
// blob transfer (adapter.BlobTransfer) and the vault package. They never
// talk to a terminal; the CLI in internal/client formats their errors.
package service

import (
	"context"

	"github.com/YabaiTech/YAPM/models"
)

// AccountService creates new accounts.
type AccountService interface {
	// Register validates the input, rejects a username or email that already
	// exists in the remote directory, creates a vault protected by password,
	// records the account in both directories and uploads the vault.
	//
	// Returns the stored account, or ErrUsernameAlreadyExists,
	// ErrEmailAlreadyExists, a validators error wrapped in
	// ErrInvalidDataProvided, or one of the Failed errors.
	Register(ctx context.Context, reg models.Registration) (models.Account, error)
}

// SyncCoordinator reconciles the local and remote state of an account at
// login and on demand afterwards.
type SyncCoordinator interface {
	// Login looks identifier up as a username, or as an email when it
	// contains "@", in both directories, brings them and the vault files
	// into agreement, verifies password and opens the vault.
	//
	// On success the returned session owns the open vault. ErrNoSuchAccount
	// is returned when neither directory knows identifier and
	// ErrInvalidCredentials when password (or the email) does not match.
	Login(ctx context.Context, identifier, password string) (*Session, error)

	// Sync downloads the remote vault, merges it into the session's vault
	// and uploads the result. The vault handle is reopened afterwards.
	Sync(ctx context.Context, session *Session) error

	// Logout closes the session's vault and uploads it once more. The upload
	// is best-effort; only a failure to close is returned.
	Logout(ctx context.Context, session *Session) error
}
