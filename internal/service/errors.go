package service

import "errors"

// Login and sync errors. Each wraps its cause, so callers can also match
// the underlying adapter, store or vault error.
var (
	ErrNoSuchAccount      = errors.New("no account with that username or email")
	ErrInvalidCredentials = errors.New("login credentials don't match")
	ErrUserDoesNotExist   = errors.New("the vault file of this account does not exist")

	ErrFailedToDownload       = errors.New("failed to download vault")
	ErrFailedToUpload         = errors.New("failed to upload vault")
	ErrFailedToSyncWithCloud  = errors.New("failed to sync with the remote directory")
	ErrFailedToSyncWithLocal  = errors.New("failed to sync with the local directory")
	ErrFailedToRemoveConflict = errors.New("failed to remove conflicting local account")
	ErrFailedToMergeFiles     = errors.New("failed to merge vault files")
	ErrFailedToOpenVault      = errors.New("failed to open vault")

	ErrSessionClosed = errors.New("session is logged out")
)

// Registration errors.
var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrFailedToCreateVault   = errors.New("failed to create vault")
	ErrFailedToRegister      = errors.New("failed to register account")
)
