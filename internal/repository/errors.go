package repository

import (
	"errors"  // Sentinel errors
	"sort"    // Stable field order in messages
	"strings" // Error string matching

	"gorm.io/gorm" // GORM ORM library
)

// Errors surfaced to the handlers
var (
	ErrNotFound          = errors.New("record not found")                     // No row matched the id
	ErrDuplicateProfile  = errors.New("profile already exists for this user") // Unique index on profiles.user_id hit
	ErrDuplicateUsername = errors.New("username already exists")              // Unique constraint on users.username hit
)

// ValidationError carries per-field messages for re-rendering a form
type ValidationError struct {
	Fields map[string]string // Field name -> message
}

// Error joins the field messages into one string
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, ", ")
}

// isDuplicateKeyError recognizes unique constraint violations across the
// MySQL and SQLite drivers, since GORM only translates some of them
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "Duplicate entry") || // MySQL
		strings.Contains(s, "UNIQUE constraint failed") || // SQLite
		strings.Contains(s, "duplicate key") // Generic
}
