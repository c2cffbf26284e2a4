package handler

import (
	"time"

	"github.com/technotes/notes-api/internal/core/domain"
)

type createUserRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1"`
}

type updateUserRequest struct {
	ID       string   `json:"id"       validate:"required"`
	Username string   `json:"username" validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1"`
	Active   *bool    `json:"active"   validate:"required"`
	Password string   `json:"password,omitempty"`
}

type deleteByIDRequest struct {
	ID string `json:"id" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// userResponse is the public shape of a user. The password digest is never
// part of it.
type userResponse struct {
	ID        string        `json:"_id"`
	Username  string        `json:"username"`
	Roles     []domain.Role `json:"roles"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func toUserResponse(u *domain.User) userResponse {
	roles := u.Roles
	if roles == nil {
		roles = []domain.Role{}
	}
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Roles:     roles,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
