package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/YabaiTech/YAPM/models"
)

const accountsTable = "master_users"

var accountColumns = []string{
	"id",
	"username",
	"email",
	"hashed_password",
	"salt",
	"pwd_db_path",
	"last_logged_in",
}

func buildSelectAccountQuery(dialect Dialect, column, value string) (string, []any, error) {
	return sq.Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{column: value}).
		Limit(1).
		PlaceholderFormat(dialect.placeholder()).
		ToSql()
}

func buildInsertAccountQuery(dialect Dialect, account models.Account) (string, []any, error) {
	return sq.Insert(accountsTable).
		Columns("username", "email", "hashed_password", "salt", "pwd_db_path", "last_logged_in").
		Values(
			account.Username,
			account.Email,
			account.HashedPassword,
			account.PasswordSalt,
			account.VaultFileName,
			account.LastLoginAtMillis,
		).
		PlaceholderFormat(dialect.placeholder()).
		ToSql()
}

func buildDeleteAccountQuery(dialect Dialect, username string) (string, []any, error) {
	return sq.Delete(accountsTable).
		Where(sq.Eq{"username": username}).
		PlaceholderFormat(dialect.placeholder()).
		ToSql()
}

func buildUpdateLastLoginQuery(dialect Dialect, username string, millis int64) (string, []any, error) {
	return sq.Update(accountsTable).
		Set("last_logged_in", millis).
		Where(sq.Eq{"username": username}).
		PlaceholderFormat(dialect.placeholder()).
		ToSql()
}
