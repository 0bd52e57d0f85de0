// Package token issues and verifies signed session tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockroom/backend/internal/domain"
)

// Config holds JWT configuration
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Claims are the session claims carried in a token
type Claims struct {
	jwt.RegisteredClaims
	Role domain.Role `json:"role"`
}

// JWTIssuer signs HS256 session tokens
type JWTIssuer struct {
	config Config
	now    func() time.Time
}

// NewJWTIssuer creates a JWT issuer
func NewJWTIssuer(config Config) (*JWTIssuer, error) {
	if config.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if config.TTL <= 0 {
		config.TTL = 8 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "stockroom"
	}
	return &JWTIssuer{config: config, now: time.Now}, nil
}

// Issue signs a token for session
func (j *JWTIssuer) Issue(session domain.Session) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.config.TTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.config.Issuer,
			Subject:   session.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: session.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses a token and returns its session.
// Any parse or validation failure is reported as domain.ErrUnauthorized.
func (j *JWTIssuer) Verify(tokenString string) (domain.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.config.Secret), nil
	},
		jwt.WithIssuer(j.config.Issuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return domain.Session{}, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}

	return domain.Session{Username: claims.Subject, Role: claims.Role}, nil
}
