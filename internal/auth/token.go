// Package auth is the shared token service: every service signs and
// verifies bearer tokens against the same process-wide secret. Identity is
// claimed, not verified — any caller can mint a token under any service
// name, and Validate only proves the token was signed with our secret.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultServiceName is used when a caller requests a token without
	// naming itself.
	DefaultServiceName = "unknown"

	// TokenTTL is how long an issued token stays valid.
	TokenTTL = time.Hour
)

var (
	ErrMissingToken = errors.New("token is missing")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("token is invalid")
)

// Claims is the payload carried by every issued token.
type Claims struct {
	ServiceName string `json:"service_name"`
	jwt.RegisteredClaims
}

// Signer issues and validates HS256 tokens. The secret is read-only after
// construction; Signer is safe for concurrent use.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for the claimed service name. It never rejects a
// name; empty defaults to DefaultServiceName.
func (s *Signer) Issue(serviceName string) (string, int, error) {
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	claims := Claims{
		ServiceName: serviceName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(TokenTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, int(TokenTTL.Seconds()), nil
}

// Validate checks a presented credential and returns the claimed service
// name. A leading "Bearer " prefix is stripped; a bare token is accepted
// as-is.
func (s *Signer) Validate(credential string) (string, error) {
	if credential == "" {
		return "", ErrMissingToken
	}
	credential = strings.TrimPrefix(credential, "Bearer ")

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !tok.Valid {
		return "", ErrInvalidToken
	}
	return claims.ServiceName, nil
}
