package db

import (
	"errors"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ConstraintViolation identifies the table and column behind a uniqueness
// failure, so callers can name the conflicting field without inspecting raw
// store errors.
type ConstraintViolation struct {
	Table  string
	Column string
}

// UniqueViolation reports whether err is a sqlite unique-constraint failure
// and, if so, which column it hit. Detection is gated on the driver's
// structured extended code; the column name only exists in the message text
// ("UNIQUE constraint failed: customers.email"), so the one parse the
// codebase needs lives here.
func UniqueViolation(err error) (ConstraintViolation, bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return ConstraintViolation{}, false
	}
	if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique &&
		sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
		return ConstraintViolation{}, false
	}
	return parseConstraintMessage(sqliteErr.Error()), true
}

func parseConstraintMessage(msg string) ConstraintViolation {
	const marker = "constraint failed: "
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return ConstraintViolation{}
	}

	// On a composite constraint sqlite lists every column; the first one is
	// enough to name the conflict.
	first := msg[idx+len(marker):]
	if comma := strings.Index(first, ","); comma >= 0 {
		first = first[:comma]
	}
	table, column, found := strings.Cut(strings.TrimSpace(first), ".")
	if !found {
		return ConstraintViolation{}
	}
	return ConstraintViolation{Table: table, Column: column}
}

// NotFound reports whether err means the requested row does not exist.
func NotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
