package repository

import (
	"errors"
	"strings"

	sqlite3 "modernc.org/sqlite/lib"
)

// ErrUsernameTaken is returned by Create when the users.username constraint rejects the row.
var ErrUsernameTaken = errors.New("username already taken")

// sqliteCoder matches *sqlite.Error without tying callers to the driver type.
type sqliteCoder interface {
	Code() int
}

func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var coded sqliteCoder
	if errors.As(err, &coded) {
		code := coded.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		// primary result code only, when extended codes are off
		if code&0xff == sqlite3.SQLITE_CONSTRAINT {
			return strings.Contains(err.Error(), "UNIQUE")
		}
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
