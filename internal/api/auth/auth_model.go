package auth

import (
	"fmt"
	"net/mail"
	"strings"
)

// LoginRequest represents the expected JSON body for user login.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"` // User's email address for login.
	Password string `json:"password" example:"password123"`   // User's password.
}

// RegisterRequest represents the expected JSON body for user registration.
type RegisterRequest struct {
	Username string `json:"username" example:"testuser"`           // Desired username. Must be unique.
	Email    string `json:"email" example:"newuser@example.com"`   // User's email address. Must be unique.
	Password string `json:"password" example:"Str0ngP@ss!"`        // User's desired password (6-60 chars).
	FullName string `json:"full_name" example:"Test User"`         // User's full display name.
}

// AuthResponse represents the successful JSON payload after login or register.
type AuthResponse struct {
	Token string   `json:"token" example:"eyJhbGciOiJI..."` // Signed, time-bound bearer token.
	Roles []string `json:"roles" example:"ROLE_USER"`       // Role set embedded in the token.
}

// Validate performs the entry-point checks the auth core expects to have
// already happened: non-blank fields and a parseable email address.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("email format is invalid")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

func (r RegisterRequest) Validate() error {
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
