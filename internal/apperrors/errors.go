package apperrors

import "fmt"

// Kind classifies an error for status-code mapping at the HTTP boundary.
type Kind int

const (
	Internal Kind = iota
	NotFound
	SelfInteraction
	Blocked
	Conflict
	Unauthorized
	AlreadyExists
)

// Error carries a Kind plus a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a kinded error with a formatted message.
func E(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
