package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

type Claims struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens of a single kind. Access and
// refresh tokens use separate managers with separate secrets.
type TokenManager struct {
	kind   TokenType
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(kind TokenType, secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		kind:   kind,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *TokenManager) Kind() TokenType { return m.kind }

func (m *TokenManager) TTL() time.Duration { return m.ttl }

func (m *TokenManager) Issue(userID, username string) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("%s token secret is empty", m.kind)
	}

	now := m.now().UTC()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		UserID:   userID,
		Username: username,
		Type:     m.kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", m.kind, err)
	}
	return signed, expiresAt, nil
}

// Verify returns ErrInvalidToken for every failure: bad signature, expiry,
// unexpected algorithm, malformed payload or a token of the other kind.
func (m *TokenManager) Verify(raw string) (Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return Claims{}, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || token == nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Type != m.kind || claims.UserID == "" || claims.Username == "" {
		return Claims{}, ErrInvalidToken
	}
	return *claims, nil
}
