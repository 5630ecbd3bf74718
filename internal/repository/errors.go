package repository

import "errors"

// Sentinel errors surfaced by repositories when the store rejects a write on
// a unique index. Services translate these into caller-visible conflicts.
var (
	ErrDuplicateHallTicket = errors.New("candidate with this hall ticket already exists")
	ErrDuplicateUsername   = errors.New("admin with this username already exists")
	ErrDuplicateEmail      = errors.New("user with this email already exists")
)
