package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cybermarket/server/internal/domain"
)

// Claims carried by an access token
type Claims struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// TokenManager issues and verifies signed JWTs for authenticated users.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate issues a signed JWT string for the claims.
func (t *TokenManager) Generate(claims Claims) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"iss":      t.issuer,
		"sub":      claims.UserID,
		"username": claims.Username,
		"admin":    claims.IsAdmin,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token string, returning its claims.
func (t *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrUnauthorized
	}
	username, _ := mapClaims["username"].(string)
	isAdmin, _ := mapClaims["admin"].(bool)

	return &Claims{UserID: sub, Username: username, IsAdmin: isAdmin}, nil
}
