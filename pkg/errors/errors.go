package errors

import "errors"

// ErrOptimisticLock optimistic-lock conflict: the row was modified by
// another operation since it was read.
var ErrOptimisticLock = errors.New("el registro fue modificado por otra operación, recarga e inténtalo de nuevo")
