// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file centralizes error classification so that the
// service layer can translate storage failures into its own taxonomy
// (conflict, integrity) without inspecting driver-specific errors itself.
package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist. It aliases
// gorm.ErrRecordNotFound for convenience and consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// IsUniqueViolation reports whether err was caused by a unique constraint
// (duplicate source identifier, concurrent user creation, …). GORM's error
// translation covers most drivers; the message checks catch paths where the
// raw driver error leaks through.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "SQLSTATE 23505") || // postgres
		strings.Contains(msg, "duplicate key value")
}

// IsForeignKeyViolation reports whether err was caused by a foreign key
// constraint, e.g. deleting an operator or source still referenced by
// requests (the schema uses RESTRICT, not CASCADE, for those references).
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") || // sqlite
		strings.Contains(msg, "SQLSTATE 23503") || // postgres
		strings.Contains(msg, "violates foreign key constraint")
}
