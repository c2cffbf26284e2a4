package domain

import "time"

// UnknownUsername is shown for notes whose owner can no longer be resolved.
const UnknownUsername = "Unknown"

// Note is a titled piece of work assigned to a user.
type Note struct {
	ID        string
	Owner     string
	Title     string
	Text      string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteView is a note joined with its owner's username for display.
type NoteView struct {
	Note
	Username string
}
