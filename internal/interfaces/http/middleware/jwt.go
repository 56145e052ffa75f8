package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/logger"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTRoleKey    = "jwt_role"
	JWTEmailKey   = "jwt_email"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig configures Authenticate
type AuthConfig struct {
	Tokens *auth.JWTService
	// Blacklist is optional; nil skips revocation checks
	Blacklist auth.TokenBlacklist
	// PublicPaths match exactly, PublicPrefixes by prefix
	PublicPaths    []string
	PublicPrefixes []string
	Logger         *zap.Logger
}

// DefaultAuthConfig makes health checks, static uploads, login and
// registration public.
func DefaultAuthConfig(tokens *auth.JWTService, blacklist auth.TokenBlacklist) AuthConfig {
	return AuthConfig{
		Tokens:         tokens,
		Blacklist:      blacklist,
		PublicPaths:    []string{"/health", "/api/v1/health", "/api/v1/auth/login", "/api/v1/auth/register"},
		PublicPrefixes: []string{"/uploads/"},
	}
}

func (cfg AuthConfig) public(path string) bool {
	if slices.Contains(cfg.PublicPaths, path) {
		return true
	}
	return slices.ContainsFunc(cfg.PublicPrefixes, func(p string) bool {
		return strings.HasPrefix(path, p)
	})
}

// JWTAuthMiddleware is Authenticate with DefaultAuthConfig
func JWTAuthMiddleware(tokens *auth.JWTService, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return Authenticate(DefaultAuthConfig(tokens, blacklist))
}

// authFailure is a refused request: the cause and the message sent back
type authFailure struct {
	err     error
	message string
}

// Authenticate requires a valid bearer token on every non-public path and
// stores its claims on the gin context.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || cfg.public(c.Request.URL.Path) {
			c.Next()
			return
		}

		claims, fail := cfg.verify(c)
		if fail != nil {
			cfg.Logger.Warn("JWT authentication failed",
				zap.Error(fail.err),
				zap.String("reason", fail.message),
				zap.String("path", c.Request.URL.Path),
			)
			abortWithError(c, failureCode(fail), fail.message)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTRoleKey, claims.Role)
		c.Set(JWTEmailKey, claims.Email)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

func bearerToken(header string) (string, *authFailure) {
	if header == "" {
		return "", &authFailure{auth.ErrInvalidToken, "Missing authorization header"}
	}
	token, ok := strings.CutPrefix(header, BearerPrefix)
	if !ok {
		return "", &authFailure{auth.ErrInvalidToken, "Invalid authorization header format"}
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", &authFailure{auth.ErrInvalidToken, "Missing token"}
	}
	return token, nil
}

func (cfg AuthConfig) verify(c *gin.Context) (*auth.Claims, *authFailure) {
	raw, fail := bearerToken(c.GetHeader(AuthHeaderKey))
	if fail != nil {
		return nil, fail
	}
	claims, err := cfg.Tokens.ValidateToken(raw)
	if errors.Is(err, auth.ErrExpiredToken) {
		return nil, &authFailure{err, "Token has expired"}
	}
	if err != nil {
		return nil, &authFailure{err, "Invalid token"}
	}
	if cfg.Blacklist == nil {
		return claims, nil
	}

	// a failed revocation lookup lets the token through
	switch revoked, err := cfg.Blacklist.IsRevoked(c.Request.Context(), claims.ID, claims.UserID, claims.GetIssuedAtTime()); {
	case err != nil:
		cfg.Logger.Error("Failed to check token revocation",
			zap.String("jti", claims.ID),
			zap.String("user_id", claims.UserID),
			zap.Error(err))
	case revoked == auth.TokenRevoked:
		return nil, &authFailure{auth.ErrTokenBlacklisted, "Token has been revoked"}
	case revoked == auth.UserRevoked:
		return nil, &authFailure{auth.ErrTokenBlacklisted, "User session has been invalidated"}
	}
	return claims, nil
}

func failureCode(f *authFailure) string {
	switch {
	case errors.Is(f.err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired
	case errors.Is(f.err, auth.ErrTokenBlacklisted):
		return dto.ErrCodeTokenRevoked
	default:
		return dto.ErrCodeUnauthorized
	}
}

// RequireRoles allows the request only when the token's role is one of roles.
// It must run after JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWithError(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !claims.HasRole(roles...) {
			abortWithError(c, dto.ErrCodeForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTRole retrieves the role from JWT claims in context
func GetJWTRole(c *gin.Context) string {
	return c.GetString(JWTRoleKey)
}
