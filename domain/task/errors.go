package task

import (
	"errors"
	"fmt"
	"strings"
)

// Error kind codes. Every sentinel error message starts with its kind code
// so the kind survives serialization across the service bus and HTTP callers
// can branch on kind instead of matching free text.
const (
	KindNotFound          = "not_found"
	KindIllegalTransition = "illegal_transition"
	KindTaskImmutable     = "task_immutable"
	KindNotPermitted      = "not_permitted"
	KindConflict          = "conflict"
	KindValidation        = "validation"
)

var (
	// ErrNotFound is returned when a referenced task or comment is absent.
	ErrNotFound = errors.New(KindNotFound + ": task does not exist")
	// ErrIllegalTransition is returned when a source/target pair is not in
	// the legal-transition table. Wrap it with the pair for context.
	ErrIllegalTransition = errors.New(KindIllegalTransition + ": status change not allowed")
	// ErrTaskImmutable is returned for any mutation of a closed task.
	ErrTaskImmutable = errors.New(KindTaskImmutable + ": closed tasks cannot be modified")
	// ErrNotPermitted is the authorization default-deny.
	ErrNotPermitted = errors.New(KindNotPermitted + ": actor may not perform this action")
	// ErrConflict is returned when the optimistic-concurrency check fails
	// at commit. Recoverable: re-fetch and re-decide.
	ErrConflict = errors.New(KindConflict + ": task was modified since it was read")
	// ErrValidation is returned for malformed input.
	ErrValidation = errors.New(KindValidation + ": invalid input")
)

var (
	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = fmt.Errorf("%w: title must not be empty", ErrValidation)
	// ErrNotConfirmed is returned when closing a solved task without the
	// explicit confirmation flag.
	ErrNotConfirmed = fmt.Errorf("%w: closing a task requires confirmation", ErrValidation)
)

// IllegalTransitionError builds an ErrIllegalTransition naming the pair.
func IllegalTransitionError(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

// Kind returns the kind code of a domain error, or "" for foreign errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrIllegalTransition):
		return KindIllegalTransition
	case errors.Is(err, ErrTaskImmutable):
		return KindTaskImmutable
	case errors.Is(err, ErrNotPermitted):
		return KindNotPermitted
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValidation):
		return KindValidation
	default:
		return ""
	}
}

// KindFromMessage recovers the kind code from an error message that crossed
// a serialization boundary and lost its wrapped identity.
func KindFromMessage(msg string) string {
	for _, kind := range []string{
		KindNotFound, KindIllegalTransition, KindTaskImmutable,
		KindNotPermitted, KindConflict, KindValidation,
	} {
		if strings.Contains(msg, kind+":") {
			return kind
		}
	}
	return ""
}
