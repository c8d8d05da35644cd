package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Token scopes. An admin session token never opens a reservation link and
// vice versa.
const (
	ScopeAdmin       = "admin"
	ScopeReservation = "reservation"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenSigner issues and validates HS256 tokens.
type TokenSigner struct {
	secret []byte
}

func NewTokenSigner(secret string) *TokenSigner {
	return &TokenSigner{secret: []byte(secret)}
}

// GenerateToken creates a signed JWT for subject (admin uid or reservation id)
// limited to scope. The token expires after the specified duration.
func (s *TokenSigner) GenerateToken(subject, scope string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": scope,
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func (s *TokenSigner) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
}

// ExtractSubject returns the subject of a valid token issued for scope.
func (s *TokenSigner) ExtractSubject(tokenString, scope string) (string, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if got, _ := claims["scope"].(string); got != scope {
		return "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
