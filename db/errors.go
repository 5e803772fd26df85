package db

import (
	"strings"

	"github.com/garagehq/gms/errors"
)

// ErrDatabaseClosed indicates an operation ran against a handle that was
// already closed, usually a command racing its own deferred Close.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err means the connection is closed.
// The storage layer wraps ErrDatabaseClosed; the string check covers the
// raw driver errors that cannot be wrapped at the source.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}

	return strings.Contains(err.Error(), "database is closed")
}
