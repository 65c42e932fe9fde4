package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fintrack/backend/internal/infrastructure/auth"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// gin keys set by Authenticate
const (
	ClaimsKey = "auth_claims"
	UserIDKey = "auth_user_id"
)

var errNoBearer = errors.New("missing bearer token")

// AuthConfig configures Authenticate
type AuthConfig struct {
	Tokens *auth.JWTService
	// Revocations, when set, rejects tokens revoked by logout or refresh
	Revocations auth.Revocations
	// Public paths skip authentication. A trailing "*" matches a prefix.
	Public []string
	Logger *zap.Logger
}

// DefaultAuthConfig leaves health, swagger and the credential endpoints public
func DefaultAuthConfig(tokens *auth.JWTService) AuthConfig {
	return AuthConfig{
		Tokens: tokens,
		Public: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/swagger*",
		},
	}
}

func (cfg AuthConfig) isPublic(path string) bool {
	for _, p := range cfg.Public {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		} else if p == path {
			return true
		}
	}
	return false
}

// Authenticate requires a valid, unrevoked access token on every
// non-public path and stores its claims on the gin context.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if cfg.isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		claims, err := authenticate(c, cfg, log)
		if err != nil {
			log.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			code, msg := authFailure(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.Fail(code, msg).WithRequestID(getRequestIDFromContext(c)))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

func authenticate(c *gin.Context, cfg AuthConfig, log *zap.Logger) (*auth.Claims, error) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, errNoBearer
	}
	claims, err := cfg.Tokens.ParseAccess(token)
	if err != nil {
		return nil, err
	}
	if cfg.Revocations == nil || claims.ID == "" {
		return claims, nil
	}

	revoked, err := cfg.Revocations.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		// fail open: an unreachable revocation store must not lock every user out
		log.Error("Revocation lookup failed", zap.String("jti", claims.ID), zap.Error(err))
		return claims, nil
	}
	if revoked {
		return nil, auth.ErrTokenRevoked
	}
	return claims, nil
}

func authFailure(err error) (code, message string) {
	switch {
	case errors.Is(err, errNoBearer):
		return dto.ErrCodeUnauthorized, "Authentication required"
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		return dto.ErrCodeTokenRevoked, "Token has been revoked"
	}
	return dto.ErrCodeInvalidToken, "Invalid token"
}

// ClaimsFrom returns the claims stored by Authenticate, or nil
func ClaimsFrom(c *gin.Context) *auth.Claims {
	claims, _ := c.Value(ClaimsKey).(*auth.Claims)
	return claims
}

// UserID returns the authenticated user. It is false when Authenticate did
// not run or the subject is not a UUID.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(UserIDKey))
	return id, err == nil
}
