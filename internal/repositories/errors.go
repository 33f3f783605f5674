package repositories

import "errors"

// ErrNotFound is wrapped by every repository when an entity is missing.
// Handlers map it to a 404 instead of returning an empty body.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is wrapped when an insert violates a unique constraint, such
// as a second payment for the same transaction ID.
var ErrDuplicate = errors.New("already exists")
