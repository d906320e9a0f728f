package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for dispatch at the boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindSchedule
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindSchedule:
		return "schedule"
	case KindDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// Error is the single error payload used across the service. Callers
// dispatch on Kind, never on concrete types.
type Error struct {
	Kind    Kind
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Op != "":
		return e.Op + ": " + e.Message
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a KindValidation error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Validationf builds a formatted KindValidation error.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound error for a missing resource.
func NotFound(resource string, identifier interface{}) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with identifier '%v' not found", resource, identifier),
	}
}

// Schedule builds a KindSchedule error.
func Schedule(msg string) *Error {
	return &Error{Kind: KindSchedule, Message: msg}
}

// Database wraps a persistence failure opaquely.
func Database(op string, err error) *Error {
	return &Error{Kind: KindDatabase, Message: "persistence failure", Op: op, Err: err}
}

// Schedule lifecycle errors. Entities return these directly so callers
// can match with errors.Is through any number of Wrap layers.
var (
	ErrScheduleClosed      = Schedule("Schedule is already closed")
	ErrInactiveSchedule    = Schedule("Cannot modify inactive schedule")
	ErrAlreadyInCrew       = Schedule("User is already in crew")
	ErrNotInCrew           = Schedule("User is not in crew")
	ErrCreatorCannotBeCrew = Schedule("Creator cannot be added as crew member")
	ErrCreatorCannotLeave  = Schedule("Creator cannot leave schedule")
)

// Wrap qualifies err with an operation message, preserving the kind and
// cause of an already-classified error. A nil err returns nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return &Error{Kind: ae.Kind, Message: ae.Message, Op: op, Err: err}
	}
	return &Error{Kind: KindUnknown, Message: err.Error(), Op: op, Err: err}
}

// KindOf extracts the classification of err, KindUnknown when it was
// never classified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

const genericUserMessage = "Something went wrong. Please try again later."

// UserMessage renders err for an end user. Operational kinds surface
// their own text; anything unclassified is masked so internal detail
// never leaks to the platform.
func UserMessage(err error) string {
	var ae *Error
	if !errors.As(err, &ae) {
		return genericUserMessage
	}
	switch ae.Kind {
	case KindValidation, KindNotFound, KindSchedule:
		return ae.Message
	default:
		return genericUserMessage
	}
}
