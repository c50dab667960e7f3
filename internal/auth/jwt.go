// Package auth issues and checks the operator tokens that guard
// administrative endpoints such as word-list refresh.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin may trigger refreshes.
const RoleAdmin = "admin"

// ErrEmptyToken is returned when no token was supplied.
var ErrEmptyToken = errors.New("token is empty")

// Claims are the validated contents of an operator token.
type Claims struct {
	Subject string
	Role    string
	TokenID uuid.UUID
	Expires time.Time
}

// JWTManager signs and validates HS256 operator tokens.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

type operatorClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// GenerateToken creates a signed token for subject with the given role.
// Every token carries a random ID so it can be traced in logs.
func (m *JWTManager) GenerateToken(subject, role string) (string, error) {
	now := time.Now()
	claims := operatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a token and returns its claims.
func (m *JWTManager) ValidateToken(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrEmptyToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &operatorClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*operatorClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("invalid token claims")
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("token has no subject")
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid token id: %w", err)
	}

	return Claims{
		Subject: claims.Subject,
		Role:    claims.Role,
		TokenID: tokenID,
		Expires: claims.ExpiresAt.Time,
	}, nil
}
