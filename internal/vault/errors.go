package vault

import "errors"

// Errors returned by [Store]. Cryptographic failures are kept apart from
// storage failures so callers can ask for the master password again instead
// of reporting a system fault.
var (
	// ErrConnectionFailure is returned by Open when the vault file cannot be
	// created or opened.
	ErrConnectionFailure = errors.New("failed to connect to vault")

	// ErrVaultLocked is returned by Open when another handle already holds
	// the vault lock file.
	ErrVaultLocked = errors.New("vault is in use by another process")

	// ErrAlreadyCreated is returned by Create on a file that already carries
	// key material.
	ErrAlreadyCreated = errors.New("vault already created")

	// ErrCreateFailure is returned when the schema or key material cannot be
	// written.
	ErrCreateFailure = errors.New("failed to create vault")

	// ErrWrongMasterPassword is returned when the verification value does not
	// decrypt to the known plaintext.
	ErrWrongMasterPassword = errors.New("wrong master password")

	// ErrBadVerificationFormat is returned when the stored verification value
	// or salt cannot be parsed.
	ErrBadVerificationFormat = errors.New("bad verification format")

	// ErrMissingMetadata is returned when the vault has no key material row.
	ErrMissingMetadata = errors.New("vault metadata is missing")

	// ErrOpenFailure is returned by List when a record cannot be decrypted.
	ErrOpenFailure = errors.New("failed to open vault records")

	// ErrEmptyField is returned by Add and Edit when url, username or
	// password is empty.
	ErrEmptyField = errors.New("url, username and password must not be empty")

	// ErrInvalidID is returned by Edit and Delete when no live record has the
	// given id.
	ErrInvalidID = errors.New("no record with this id")

	// ErrDuplicateID is returned by Edit when the new url and username
	// belong to a different live record.
	ErrDuplicateID = errors.New("another record already uses this url and username")

	// ErrCloseFailure is returned by Close when the file handle or the lock
	// cannot be released.
	ErrCloseFailure = errors.New("failed to close vault")

	// ErrStoreClosed is returned by any operation on a closed store.
	ErrStoreClosed = errors.New("vault store is closed")

	// ErrWriteFailure is returned when a mutation fails for a storage reason.
	// The transaction is rolled back and the file is unchanged.
	ErrWriteFailure = errors.New("failed to write vault")
)

// Merge errors.
var (
	// ErrDifferentMasterPassword is returned by Merge when the stores were
	// unlocked with different master passwords.
	ErrDifferentMasterPassword = errors.New("vaults were unlocked with different master passwords")

	// ErrMergeFailure is returned when any step of a merge fails. Nothing is
	// committed to the destination.
	ErrMergeFailure = errors.New("failed to merge vaults")
)
