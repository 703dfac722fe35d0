package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/YabaiTech/YAPM/internal/config"
	"github.com/YabaiTech/YAPM/internal/logger"
)

// Storages groups the two account directories a client works with.
type Storages struct {
	// LocalAccounts is the SQLite directory kept next to the vault files.
	LocalAccounts AccountRepository
	// RemoteAccounts is the shared directory every device consults.
	RemoteAccounts AccountRepository
}

// NewStorages opens and migrates both account directories described by cfg.
// The remote DSN may point at Postgres or, for single-machine setups, at a
// SQLite file.
func NewStorages(ctx context.Context, cfg config.ClientDirectory, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	local, err := OpenDirectory(ctx, cfg.LocalPath, logger)
	if err != nil {
		return nil, fmt.Errorf("local directory: %w", err)
	}

	remote, err := OpenDirectory(ctx, cfg.RemoteDSN, logger)
	if err != nil {
		_ = local.Close()
		return nil, fmt.Errorf("remote directory: %w", err)
	}

	return &Storages{
		LocalAccounts:  NewAccountRepository(local, logger),
		RemoteAccounts: NewAccountRepository(remote, logger),
	}, nil
}

// OpenDirectory connects to the directory at dsn and runs its migrations.
func OpenDirectory(ctx context.Context, dsn string, logger *logger.Logger) (*DB, error) {
	var (
		db  *DB
		err error
	)
	switch DialectFromDSN(dsn) {
	case DialectPostgres:
		db, err = NewConnectPostgres(ctx, dsn, logger)
	default:
		db, err = NewConnectSQLite(ctx, dsn, logger)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}

// Close closes both directories.
func (s *Storages) Close() error {
	return errors.Join(s.LocalAccounts.Close(), s.RemoteAccounts.Close())
}
