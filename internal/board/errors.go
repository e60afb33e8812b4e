package board

import "errors"

// ErrValidation marks an operation rejected because its input was incomplete
// or invalid. The store is left unchanged.
var ErrValidation = errors.New("validation rejected")

// ErrNotFound marks an operation that referenced a task id no longer present.
var ErrNotFound = errors.New("task not found")

// ErrPersistenceUnavailable marks a storage read or write failure. The store
// keeps working in memory when it sees one.
var ErrPersistenceUnavailable = errors.New("persistence unavailable")
