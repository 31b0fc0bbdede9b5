package interfaces

import "errors"

// ErrNotFound is wrapped by every repository backend when a lookup misses.
// Upper layers check it with errors.Is to tell a missing document apart
// from a store failure, which propagates unchanged.
var ErrNotFound = errors.New("entity not found")
