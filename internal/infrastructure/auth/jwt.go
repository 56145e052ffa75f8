package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims are the access token claims. jti, iat and exp come from the
// registered claims; jti is what logout revokes.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
}

// Token is a signed access token as returned by login
type Token struct {
	AccessToken string    `json:"token"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// JWTService signs and checks HS256 access tokens. Tokens live for a fixed
// period and are never refreshed.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	s := &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}
	if s.expiration <= 0 {
		s.expiration = 24 * time.Hour
	}
	return s
}

type GenerateTokenInput struct {
	UserID uuid.UUID
	Role   string
	Email  string
}

func (s *JWTService) GenerateToken(input GenerateTokenInput) (*Token, error) {
	issued := s.now()
	expires := issued.Add(s.expiration)
	userID := input.UserID.String()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		UserID: userID,
		Role:   input.Role,
		Email:  input.Email,
	}).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expires}, nil
}

func (s *JWTService) parser() *jwt.Parser {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	return jwt.NewParser(opts...)
}

// ValidateToken checks signature, issuer and lifetime and returns the claims.
// Every failure maps to one of the package errors.
func (s *JWTService) ValidateToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser().ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	case claims.UserID == "":
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// Expiration returns the token lifetime
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

func (c *Claims) GetIssuedAtTime() time.Time { return numericTime(c.IssuedAt) }

func (c *Claims) GetExpiresAtTime() time.Time { return numericTime(c.ExpiresAt) }

func numericTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

// GetRemainingTTL is the time left before expiry, never negative
func (c *Claims) GetRemainingTTL() time.Duration {
	return max(time.Until(c.GetExpiresAtTime()), 0)
}

// HasRole reports whether the token's role is one of roles
func (c *Claims) HasRole(roles ...string) bool {
	return slices.Contains(roles, c.Role)
}
