package store

import (
	"context"
	"io"

	"github.com/YabaiTech/YAPM/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository is an account directory: the table that maps a username
// or email to the account's password hash and vault file name.
//
// Lookups never fail for a missing row. They return [models.NotFoundAccount]
// (LastLoginAtMillis == -1) and a nil error, so callers can classify local
// and remote state with the same code path.
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (models.Account, error)
	GetByEmail(ctx context.Context, email string) (models.Account, error)
	AddAccount(ctx context.Context, account models.Account) error
	DeleteAccount(ctx context.Context, username string) error
	UpdateLastLogin(ctx context.Context, username string, millis int64) error
	Close() error
}

// BlobStorage keeps the vault blobs served by the relay server, addressed by
// bucket and object name.
type BlobStorage interface {
	// Put stores content under bucket/name. Unless overwrite is set an
	// existing object is left alone and ErrBlobAlreadyExists is returned.
	Put(ctx context.Context, bucket, name string, content io.Reader, overwrite bool) error
	// Get opens the object for reading and reports its size.
	Get(ctx context.Context, bucket, name string) (io.ReadCloser, int64, error)
}

// ErrorClassificator decides whether a failed database call is worth
// repeating.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
