package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionTokens signs and verifies the HS256 tokens that identify a
// storefront session. The subject claim carries the session id.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime given to newly issued tokens.
func (t *SessionTokens) TTL() time.Duration {
	return t.ttl
}

// Issue creates a new session id and its signed token.
func (t *SessionTokens) Issue() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	token, err = t.Sign(sessionID)
	return sessionID, token, err
}

func (t *SessionTokens) Sign(sessionID string) (string, error) {
	if len(t.secret) == 0 {
		return "", fmt.Errorf("session secret not set")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	})
	return token.SignedString(t.secret)
}

// Validate returns the session id carried by a valid, unexpired token.
func (t *SessionTokens) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidSessionToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: subject is not a session id", ErrInvalidSessionToken)
	}
	return claims.Subject, nil
}
