package store

import "errors"

// ErrNotFound is returned when a referenced row does not exist or, for
// lookups that exclude them, is soft-deleted. Callers map it to a 404 and
// must never swallow it.
var ErrNotFound = errors.New("record not found")
