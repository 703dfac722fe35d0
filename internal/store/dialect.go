package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Dialect names the SQL engine behind a [DB].
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// DialectFromDSN picks the engine for a directory DSN: postgres URLs and
// keyword DSNs go to Postgres, anything else is treated as a SQLite path.
func DialectFromDSN(dsn string) Dialect {
	switch {
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host=") && strings.Contains(dsn, "dbname="):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

func (d Dialect) placeholder() sq.PlaceholderFormat {
	if d == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

func (d Dialect) gooseDialect() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite3"
}
