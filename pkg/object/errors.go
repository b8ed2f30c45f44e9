package object

import "errors"

// ErrNotFound means no object exists at the hash-derived path.
var ErrNotFound = errors.New("object not found")

// ErrCorrupt means an object file failed to inflate, carried a malformed
// envelope, or declared a size that does not match its payload.
var ErrCorrupt = errors.New("corrupt object")

// ErrKindMismatch means a typed read found an object of a different kind.
var ErrKindMismatch = errors.New("object kind mismatch")
