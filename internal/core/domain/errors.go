package domain

import "errors"

// Error kinds. Every concrete domain error unwraps to exactly one of these so
// the transport layer can map by category with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrInvalidData = errors.New("invalid data")
)

// Error is a client-facing failure with a stable message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

var (
	ErrMissingFields  = &Error{Kind: ErrValidation, Message: "All fields are required"}
	ErrUserIDRequired = &Error{Kind: ErrValidation, Message: "User ID required"}
	ErrNoteIDRequired = &Error{Kind: ErrValidation, Message: "Note ID required"}

	ErrUserNotFound = &Error{Kind: ErrNotFound, Message: "User not found"}
	ErrNoteNotFound = &Error{Kind: ErrNotFound, Message: "Note not found"}
	ErrNoNotes      = &Error{Kind: ErrNotFound, Message: "No notes found"}

	ErrDuplicateUsername  = &Error{Kind: ErrConflict, Message: "Duplicate username"}
	ErrDuplicateNoteTitle = &Error{Kind: ErrConflict, Message: "Duplicate note title"}
	ErrUserHasNotes       = &Error{Kind: ErrConflict, Message: "User has assigned notes"}

	ErrInvalidUserData = &Error{Kind: ErrInvalidData, Message: "Invalid user data received"}
	ErrInvalidNoteData = &Error{Kind: ErrInvalidData, Message: "Invalid note data received"}
)

// ErrInvalidCredentials is returned by login for unknown users, inactive
// users and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")
