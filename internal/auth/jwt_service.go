package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionExpiry is used when no expiry is configured.
const DefaultSessionExpiry = 24 * time.Hour

var (
	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingBearer is returned when an Authorization header carries no token.
	ErrMissingBearer = errors.New("missing bearer token")
)

// Claims represents session token claims.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies session tokens.
type JWTService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret and token lifetime.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry <= 0 {
		expiry = DefaultSessionExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Secret returns the signing key, for middleware that verifies tokens itself.
func (s *JWTService) Secret() []byte {
	return s.secret
}

// GenerateSessionToken signs a session token for the given user.
func (s *JWTService) GenerateSessionToken(uid, email, role string) (string, error) {
	now := s.now()
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a session token and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractEmail verifies the token and returns the email it carries.
func (s *JWTService) ExtractEmail(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}

// BearerToken returns the second whitespace-separated field of an
// Authorization header value ("Bearer <token>").
func BearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return "", ErrMissingBearer
	}
	return parts[1], nil
}
