package user

import (
	"github.com/amirasaad/finhub/pkg/domain/user"
)

// CreateRequest is the body of POST /api/users.
type CreateRequest struct {
	ClerkUserID string `json:"clerk_user_id" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Name        string `json:"name" validate:"max=255"`
}

// Response is a user as the frontend reads it.
type Response struct {
	ID          string `json:"id"`
	ClerkUserID string `json:"clerk_user_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
}

func ToResponse(u *user.User) *Response {
	return &Response{
		ID:          u.ID.String(),
		ClerkUserID: u.ClerkUserID,
		Email:       u.Email,
		Name:        u.Name,
	}
}

func ToResponses(users []*user.User) []*Response {
	out := make([]*Response, 0, len(users))
	for _, u := range users {
		out = append(out, ToResponse(u))
	}
	return out
}
