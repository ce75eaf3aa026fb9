package treecodec

import (
	"errors"
	"fmt"
)

// ErrEmptyTopLevel is returned by Encode when the traversal finished without
// writing anything. An explicit top-level null is a valid result; never
// touching the session is not.
var ErrEmptyTopLevel = errors.New("treecodec: top-level encode produced no value")

// pathDetail is the single formatting routine behind every diagnostic, so
// both engines report failures the same way.
func pathDetail(p Path, detail string) string {
	return "treecodec: at " + p.String() + ": " + detail
}

// TypeMismatchError reports a value that was present but of the wrong kind.
type TypeMismatchError struct {
	Expected string
	Found    string
	Path     Path
}

func (e *TypeMismatchError) Error() string {
	return pathDetail(e.Path, fmt.Sprintf("expected %s, found %s", e.Expected, e.Found))
}

// ValueNotFoundError reports an absent (or explicitly null) value where a
// non-optional of the expected kind was required.
type ValueNotFoundError struct {
	Expected string
	Path     Path
}

func (e *ValueNotFoundError) Error() string {
	return pathDetail(e.Path, fmt.Sprintf("expected %s, found no value", e.Expected))
}

// KeyNotFoundError reports an object that lacked the requested key entirely.
// A present key mapped to null is not this error; see ValueNotFoundError.
type KeyNotFoundError struct {
	Key  string
	Path Path
}

func (e *KeyNotFoundError) Error() string {
	return pathDetail(e.Path, fmt.Sprintf("key %q not found", e.Key))
}

// CorruptedError reports a value of the right coarse kind that is semantically
// invalid: bad base64, an unparsable timestamp, or a numeric narrowing that
// would lose information.
type CorruptedError struct {
	Reason string
	Path   Path
	Err    error // optional cause
}

func (e *CorruptedError) Error() string {
	if e.Err != nil {
		return pathDetail(e.Path, e.Reason+": "+e.Err.Error())
	}
	return pathDetail(e.Path, e.Reason)
}

func (e *CorruptedError) Unwrap() error { return e.Err }

// ContractViolationError marks a bug in a TreeMarshaler implementation, such
// as switching container kinds on a committed session. It is delivered via
// panic, never returned, so it cannot be mistaken for bad input data.
type ContractViolationError struct {
	Detail string
	Path   Path
}

func (e *ContractViolationError) Error() string {
	return pathDetail(e.Path, "contract violation: "+e.Detail)
}

func contractViolation(p Path, detail string) {
	panic(&ContractViolationError{Detail: detail, Path: p})
}

func corrupted(p Path, reason string, cause error) *CorruptedError {
	return &CorruptedError{Reason: reason, Path: p, Err: cause}
}
