// Package errors provides the structured error taxonomy shared by the catalog,
// the answer store and the engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error that carries no taxonomy code.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotFound marks an unknown area, session, question or answer key.
	// Caller error; surfaced as-is and never retried.
	CodeNotFound Code = "NOT_FOUND"

	// CodeValidation marks missing mandatory evidence or a malformed input
	// such as an empty reason. Never auto-corrected.
	CodeValidation Code = "VALIDATION"

	// CodeInvalidState marks a violated lifecycle precondition, e.g. resolving
	// a defect that is already resolved or writing to a locked session.
	// Callers must re-fetch current state before retrying.
	CodeInvalidState Code = "INVALID_STATE"

	// CodeStorageUnavailable marks a transient infrastructure failure. The
	// whole read, or the guarded write, is safe to retry.
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
)

// Retryable reports whether an operation failing with this code may be
// retried unchanged.
func (c Code) Retryable() bool {
	return c == CodeStorageUnavailable
}
