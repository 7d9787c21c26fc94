package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims holds the session claims.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionService issues and validates staff session tokens.
type SessionService struct {
	secret      []byte
	expireHours int
	now         func() time.Time
}

// NewSessionService creates a session service.
func NewSessionService(secret string, expireHours int) *SessionService {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &SessionService{
		secret:      []byte(secret),
		expireHours: expireHours,
		now:         time.Now,
	}
}

// TTL is the lifetime of a session.
func (s *SessionService) TTL() time.Duration {
	return time.Duration(s.expireHours) * time.Hour
}

// Issue creates a signed session token for username.
func (s *SessionService) Issue(username string) (string, error) {
	now := s.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and validates a session token.
func (s *SessionService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
