package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kidventure/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token expired")
	ErrNoSecret     = errors.New("session secret not configured")
)

// Claims carries the signed session payload: which role is active and
// which profile it is acting as
type Claims struct {
	Role      models.Role `json:"role"`
	ProfileID string      `json:"profileId,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed session tokens for the API layer.
// Tokens are HS256 with a bounded lifetime; switching role or profile
// issues a fresh token.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a session manager. The secret must be non-empty.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue creates a signed token for the given role and active profile id
func (m *Manager) Issue(role models.Role, profileID string) (string, error) {
	now := m.now()
	claims := Claims{
		Role:      role,
		ProfileID: profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || !claims.Role.Valid() || claims.Role == models.RoleNone {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
