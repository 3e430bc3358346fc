package types

import (
	"time"

	"github.com/google/uuid"
)

// UserAuth represents the core user entity in the domain.
// The Password field always holds a bcrypt hash once the record has left the
// auth service boundary; it is never serialized.
type UserAuth struct {
	ID        uuid.UUID `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"` // Unique identifier, assigned once at creation.
	Username  string    `json:"username" example:"johndoe"`                        // Unique username.
	Email     string    `json:"email" example:"john.doe@example.com"`              // Unique email address used for login.
	Password  string    `json:"-"`                                                 // Hashed password (never exposed).
	FullName  string    `json:"full_name" example:"John Doe"`                      // Display name.
	Roles     []string  `json:"roles" example:"ROLE_USER"`                         // Role set (e.g. 'ROLE_USER').
	CreatedAt time.Time `json:"created_at"`                                        // Timestamp when the user was created.
	UpdatedAt time.Time `json:"updated_at"`                                        // Timestamp when the user was last updated.
}
