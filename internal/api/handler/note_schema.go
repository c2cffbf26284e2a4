package handler

import (
	"time"

	"github.com/technotes/notes-api/internal/core/domain"
)

type createNoteRequest struct {
	User  string `json:"user"  validate:"required"`
	Title string `json:"title" validate:"required"`
	Text  string `json:"text"  validate:"required"`
}

type updateNoteRequest struct {
	ID        string `json:"id"        validate:"required"`
	User      string `json:"user"      validate:"required"`
	Title     string `json:"title"     validate:"required"`
	Text      string `json:"text"      validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

type noteResponse struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Username  string    `json:"username"`
}

func toNoteResponses(views []domain.NoteView) []noteResponse {
	out := make([]noteResponse, 0, len(views))
	for _, v := range views {
		out = append(out, noteResponse{
			ID:        v.ID,
			User:      v.Owner,
			Title:     v.Title,
			Text:      v.Text,
			Completed: v.Completed,
			CreatedAt: v.CreatedAt,
			UpdatedAt: v.UpdatedAt,
			Username:  v.Username,
		})
	}
	return out
}
