package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/models"
)

// accountRepository is the SQL implementation of [AccountRepository]. The
// same code serves the local SQLite directory and the remote Postgres one;
// only the placeholder format differs.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUsername returns the account with the given username, or
// [models.NotFoundAccount] when there is none.
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (models.Account, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail returns the account with the given email, or
// [models.NotFoundAccount] when there is none.
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.getBy(ctx, "email", email)
}

func (r *accountRepository) getBy(ctx context.Context, column, value string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAccountQuery(r.db.dialect, column, value)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.getBy").Msg("error building query")
		return models.NotFoundAccount(), fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var account models.Account
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(
			&account.ID,
			&account.Username,
			&account.Email,
			&account.HashedPassword,
			&account.PasswordSalt,
			&account.VaultFileName,
			&account.LastLoginAtMillis,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFoundAccount(), nil
	}
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.getBy").Str("column", column).Msg("error scanning account row")
		return models.NotFoundAccount(), fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return account, nil
}

// AddAccount inserts account. A taken username yields
// [ErrAccountAlreadyExists].
func (r *accountRepository) AddAccount(ctx context.Context, account models.Account) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAccountQuery(r.db.dialect, account)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.AddAccount").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAccountAlreadyExists
		}
		log.Err(err).Str("func", "*accountRepository.AddAccount").Str("username", account.Username).Msg("error inserting account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteAccount removes the account with the given username.
func (r *accountRepository) DeleteAccount(ctx context.Context, username string) error {
	query, args, err := buildDeleteAccountQuery(r.db.dialect, username)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "*accountRepository.DeleteAccount", query, args)
}

// UpdateLastLogin stores millis as the account's last login time.
func (r *accountRepository) UpdateLastLogin(ctx context.Context, username string, millis int64) error {
	query, args, err := buildUpdateLastLoginQuery(r.db.dialect, username, millis)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOne(ctx, "*accountRepository.UpdateLastLogin", query, args)
}

// Close releases the underlying database handle.
func (r *accountRepository) Close() error {
	return r.db.Close()
}

// execOne runs a DML statement that must touch at least one row.
func (r *accountRepository) execOne(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	var affected int64
	err := r.db.withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoAccountWasFound
	}

	return nil
}
