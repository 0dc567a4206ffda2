package services

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an issued access token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies HS256 access tokens. Tokens are only issued
// to callers presenting the identity provider's shared secret.
type AuthService struct {
	secret       []byte
	issuerSecret []byte
	lifetime     time.Duration
	now          func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(secret string, lifetime time.Duration) *AuthService {
	return &AuthService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// WithIssuerSecret sets the secret the identity provider presents when it asks
// for a token. Without one, VerifyIssuer rejects every caller.
func (s *AuthService) WithIssuerSecret(secret string) *AuthService {
	s.issuerSecret = []byte(secret)
	return s
}

// VerifyIssuer checks the secret presented by the caller of the token endpoint.
func (s *AuthService) VerifyIssuer(presented string) error {
	if len(s.issuerSecret) == 0 {
		return ErrIssuerNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(presented), s.issuerSecret) != 1 {
		return ErrInvalidIssuer
	}
	return nil
}

// IssueToken signs a token for the given identity.
func (s *AuthService) IssueToken(email, name string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrValidation)
	}

	now := s.now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// VerifyToken checks the signature and expiry of a token and returns its claims.
func (s *AuthService) VerifyToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token has no email", ErrInvalidToken)
	}
	return claims, nil
}
