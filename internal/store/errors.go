package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountAlreadyExists is returned by AddAccount when the username is
	// already taken in the directory.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrNoAccountWasFound is returned by DeleteAccount and UpdateLastLogin
	// when no row matches the username. Lookups report a missing account
	// through the not-found sentinel record instead.
	ErrNoAccountWasFound = errors.New("no account was found")

	// ErrOpeningDatabase is returned when a database file or server cannot
	// be opened or does not answer a ping.
	ErrOpeningDatabase = errors.New("error opening database")
)

// Blob storage errors used by the relay server.
var (
	ErrOpeningBlobStorage = errors.New("error opening blob storage")
	ErrInvalidBlobName    = errors.New("invalid bucket or object name")
	ErrBlobNotFound       = errors.New("object not found")
	ErrBlobAlreadyExists  = errors.New("object already exists")

	// ErrReadingBlobContent means the uploaded stream broke before it was
	// fully stored. Nothing is written in that case.
	ErrReadingBlobContent = errors.New("error reading uploaded content")
	ErrWritingBlob        = errors.New("error writing object")
	ErrReadingBlob        = errors.New("error reading object")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
