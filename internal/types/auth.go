package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the custom claims included in the JWT access token.
type Claims struct {
	UserID               string   `json:"uid"`           // Custom claim for User ID (also the registered Subject).
	Username             string   `json:"usr,omitempty"` // Custom claim for Username.
	Roles                []string `json:"rol,omitempty"` // Custom claim for the user's role set.
	jwt.RegisteredClaims          // Embed standard claims (ExpiresAt, IssuedAt, Subject, etc.).
}
