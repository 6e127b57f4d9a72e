package services

import (
	"fmt"
	"strconv"
	"time"

	"tg-dating-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 30 * 24 * time.Hour

// sessionClaims carries the platform identity inside a session token
type sessionClaims struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// SessionService issues and reads session tokens. Tokens only carry the
// identity the platform bridge supplied; they do not prove it.
type SessionService struct {
	secret []byte
	clock  func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(secret string) *SessionService {
	return &SessionService{secret: []byte(secret), clock: time.Now}
}

// Issue signs a token for identity
func (s *SessionService) Issue(identity models.Identity) (string, error) {
	if identity.IsZero() {
		return "", ErrIdentityRequired
	}

	now := s.clock()
	claims := sessionClaims{
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Username:  identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Key(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Parse validates a token and returns the identity it carries
func (s *SessionService) Parse(tokenString string) (models.Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return models.Identity{}, fmt.Errorf("invalid token")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return models.Identity{}, fmt.Errorf("invalid subject in token")
	}

	return models.Identity{
		ID:        id,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Username:  claims.Username,
	}, nil
}
