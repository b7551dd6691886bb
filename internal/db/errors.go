package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
	ErrInvalidQuery  = errors.New("db: invalid query")
)

// Op constants name the backend operation for error context.
const (
	OpOpen      = "OPEN"
	OpCreate    = "CREATE"
	OpSearch    = "SEARCH"
	OpSuggest   = "SUGGEST"
	OpIndex     = "INDEX"
	OpDelete    = "DELETE"
	OpCount     = "COUNT"
	OpClose     = "CLOSE"
	OpPing      = "PING"
	OpSMembers  = "SMEMBERS"
	OpSIsMember = "SISMEMBER"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
