package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/socialseed/socialseed/internal/types"
)

// CreateUserRequest represents the expected JSON body for creating a user
// through the user CRUD surface.
type CreateUserRequest struct {
	Username string `json:"username" example:"johndoe"`
	Email    string `json:"email" example:"john.doe@example.com"`
	Password string `json:"password" example:"Str0ngP@ss!"`
	FullName string `json:"full_name" example:"John Doe"`
}

func (r CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if len(r.Username) > 30 {
		return fmt.Errorf("username must be at most 30 characters")
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("email format is invalid")
	}
	if len(r.Password) < 6 || len(r.Password) > 60 {
		return fmt.Errorf("password must be between 6 and 60 characters")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("full name is required")
	}
	if len(r.FullName) > 100 {
		return fmt.Errorf("full name must be at most 100 characters")
	}
	return nil
}

// UserResponse is the outward projection of a user record. The password hash
// never appears here.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *types.UserAuth) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []types.UserAuth) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
