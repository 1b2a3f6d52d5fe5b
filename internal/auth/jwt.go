package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/HARSHPATEL-54/SGP4/internal/domain"
)

// Actor is the authenticated identity threaded explicitly through handlers,
// instead of decorating the request object.
type Actor struct {
	ID    string
	Admin bool
}

var ErrInvalidToken = errors.New("invalid authentication token")

type Claims struct {
	UserID   string `json:"userId"`
	IsAdmin  bool   `json:"isAdmin"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the session tokens carried in the `token`
// cookie.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (t *TokenManager) TTL() time.Duration {
	return t.ttl
}

func (t *TokenManager) Issue(user *domain.User) (string, error) {
	provider := user.AuthProvider
	if provider == "" {
		provider = domain.AuthProviderLocal
	}

	now := time.Now()
	claims := Claims{
		UserID:   user.ID.Hex(),
		IsAdmin:  user.Admin,
		Provider: string(provider),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
