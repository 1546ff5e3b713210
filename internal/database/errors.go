package database

import (
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsConstraintViolation reports whether err is a SQLite constraint failure
// (NOT NULL, UNIQUE, FOREIGN KEY, CHECK or a trigger RAISE(ABORT)).
func IsConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// extended result codes keep the primary code in the low byte
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

// closedDBMessage is the text of database/sql's unexported errDBClosed.
const closedDBMessage = "sql: database is closed"

// IsConnectionGone reports whether err means the handle can no longer be used.
// Callers that own the handle should track closing themselves; the message
// match only catches a handle closed behind their back.
func IsConnectionGone(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrConnDone) {
		return true
	}
	return strings.Contains(err.Error(), closedDBMessage)
}
