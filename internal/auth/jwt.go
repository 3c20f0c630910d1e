package auth

import (
	"errors"
	"fmt"
	"time"

	"paperdesk_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the access-token payload. Capabilities carries the acting
// user's capability set so route guards don't need a DB round trip for
// coarse checks; the access-control middleware still reloads the user
// row to fail closed on deactivation.
type Claims struct {
	UserID       uint     `json:"uid"`
	Email        string   `json:"email"`
	Capabilities []string `json:"caps"`
	jwt.RegisteredClaims
}

// RefreshClaims is the refresh-token payload, deliberately minimal.
type RefreshClaims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a signed, time-limited access token.
func GenerateAccessToken(userID uint, email string, capabilities []string) (string, error) {
	cfg := config.GetConfig()

	claims := &Claims{
		UserID:       userID,
		Email:        email,
		Capabilities: capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.JWT.AccessTTLMin) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.AccessSecret))
}

// GenerateRefreshToken issues a signed refresh token.
func GenerateRefreshToken(userID uint, email string) (string, error) {
	cfg := config.GetConfig()

	claims := &RefreshClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.JWT.RefreshTTLHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.RefreshSecret))
}

// ParseAccessToken verifies the signature and expiry of an access token.
func ParseAccessToken(tokenStr string) (*Claims, error) {
	return parseToken[*Claims](tokenStr, config.GetConfig().JWT.AccessSecret, &Claims{})
}

// ParseRefreshToken verifies the signature and expiry of a refresh token.
func ParseRefreshToken(tokenStr string) (*RefreshClaims, error) {
	return parseToken[*RefreshClaims](tokenStr, config.GetConfig().JWT.RefreshSecret, &RefreshClaims{})
}

func parseToken[T jwt.Claims](tokenStr, secret string, claims T) (T, error) {
	var zero T

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return zero, ErrTokenExpired
		}
		return zero, ErrInvalidToken
	}
	if !token.Valid {
		return zero, ErrInvalidToken
	}

	return claims, nil
}
