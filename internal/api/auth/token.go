package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/socialseed/socialseed/config"
	"github.com/socialseed/socialseed/internal/api"
	"github.com/socialseed/socialseed/internal/types"
)

// TokenProvider issues and verifies the signed, time-bound bearer tokens
// asserting a user's identity and roles. The signing key comes from
// configuration, so verification survives process restarts.
type TokenProvider struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
	audience  string
	now       func() time.Time
}

func NewTokenProvider(cfg config.JWTConfig) *TokenProvider {
	if cfg.SecretKey == "" {
		panic("JWT Secret Key cannot be empty")
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &TokenProvider{
		secretKey: []byte(cfg.SecretKey),
		ttl:       ttl,
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		now:       time.Now,
	}
}

// Issue signs a token for the given user: subject = user id, plus username
// and role claims, issued-at now and expiry now + TTL.
func (p *TokenProvider) Issue(user *types.UserAuth) (string, error) {
	now := p.now()
	claims := &types.Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. It fails with
// types.ErrUnauthenticated if the signature does not match, the token is
// structurally malformed, or it has expired; no claims are returned on
// failure.
func (p *TokenProvider) Verify(tokenString string) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secretKey, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrUnauthenticated, tokenErrorMessage(err))
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", types.ErrUnauthenticated)
	}

	if p.issuer != "" && claims.Issuer != p.issuer {
		return nil, fmt.Errorf("%w: invalid token issuer", types.ErrUnauthenticated)
	}
	if p.audience != "" && !api.VerifyAudience(claims.Audience, p.audience) {
		return nil, fmt.Errorf("%w: invalid token audience", types.ErrUnauthenticated)
	}

	return claims, nil
}

// TTL reports the fixed issuance window for tokens from this provider.
func (p *TokenProvider) TTL() time.Duration {
	return p.ttl
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token has expired"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed token"
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return "invalid token signature"
	default:
		return "invalid or expired token"
	}
}
