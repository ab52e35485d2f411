package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// IsUniqueViolation reports whether err is a storage-level uniqueness
// constraint rejection, for either driver. Stores translate these into
// duplicate-state errors so the losing side of a concurrent insert race gets
// a conflict instead of a generic fault.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	var sErr *sqlite3.Error
	if errors.As(err, &sErr) {
		switch sErr.Code() {
		case sqlitelib.SQLITE_CONSTRAINT_UNIQUE, sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

// IsCheckViolation reports a CHECK constraint rejection (rating bounds).
func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514" // check_violation
	}
	var sErr *sqlite3.Error
	if errors.As(err, &sErr) {
		return sErr.Code() == sqlitelib.SQLITE_CONSTRAINT_CHECK
	}
	return false
}
