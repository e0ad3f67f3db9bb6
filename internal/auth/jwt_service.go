package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultTokenExpiry is the validity window used when no explicit expiry is
// configured.
const DefaultTokenExpiry = 7 * 24 * time.Hour

// ErrInvalidToken is the single rejection returned for every verification
// failure. Callers must not learn whether a token was malformed, forged or
// expired.
var ErrInvalidToken = errors.New("invalid token")

// UserClaim is the user payload embedded in issued tokens.
type UserClaim struct {
	Username string `json:"username"`
}

// Claims represents JWT claims carried by issued tokens.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Username returns the identity the token was issued for.
func (c *Claims) Username() string {
	if c.User.Username != "" {
		return c.User.Username
	}
	return c.Subject
}

// JWTService issues and verifies bearer tokens. The secret is injected once
// at construction and read-only afterwards.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a new JWT service with the given secret and token
// validity window.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry == 0 {
		expiry = DefaultTokenExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue generates a signed token whose subject is the given username.
func (s *JWTService) Issue(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		User: UserClaim{Username: username},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and validity window and returns the embedded
// claims. The signing method comes from server configuration, never from the
// token itself. Any failure collapses to ErrInvalidToken.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username() == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
