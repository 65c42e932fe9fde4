package auth

import (
	"errors"
	"time"

	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType separates access from refresh tokens inside the claims
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrTokenRevoked     = errors.New("token has been revoked")
)

// Claims are the registered claims plus the owner of the token. The jti
// (ID) is what logout revokes.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType TokenType `json:"token_type"`
}

// UserUUID parses the token owner
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// TTL is the time left before the token expires, never negative
func (c *Claims) TTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

// TokenPair is what register, login and refresh hand back
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
	ExpiresAt    time.Time
	TokenType    string // always Bearer
}

// tokenKind is the signing key and lifetime of one TokenType
type tokenKind struct {
	typ    TokenType
	secret []byte
	ttl    time.Duration
}

// JWTService issues and verifies HS256 tokens. Access and refresh tokens
// are signed with different secrets when a refresh secret is configured.
type JWTService struct {
	access  tokenKind
	refresh tokenKind
	issuer  string
	parser  *jwt.Parser
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		access:  tokenKind{typ: TokenTypeAccess, secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
		refresh: tokenKind{typ: TokenTypeRefresh, secret: []byte(refreshSecret), ttl: cfg.RefreshTokenExpiration},
		issuer:  cfg.Issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// IssuePair signs a fresh access and refresh token for the user. The
// refresh token carries no email.
func (s *JWTService) IssuePair(userID uuid.UUID, email string) (*TokenPair, error) {
	now := time.Now()
	access, err := s.sign(s.access, userID, email, now)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(s.refresh, userID, "", now)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.access.ttl / time.Second),
		ExpiresAt:    now.Add(s.access.ttl),
		TokenType:    "Bearer",
	}, nil
}

func (s *JWTService) sign(kind tokenKind, userID uuid.UUID, email string, now time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(kind.ttl)),
		},
		UserID:    userID.String(),
		Email:     email,
		TokenType: kind.typ,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(kind.secret)
}

// ParseAccess verifies an access token
func (s *JWTService) ParseAccess(token string) (*Claims, error) {
	return s.parse(s.access, token)
}

// ParseRefresh verifies a refresh token
func (s *JWTService) ParseRefresh(token string) (*Claims, error) {
	return s.parse(s.refresh, token)
}

// AccessTTL is the configured access token lifetime
func (s *JWTService) AccessTTL() time.Duration {
	return s.access.ttl
}

func (s *JWTService) parse(kind tokenKind, token string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return kind.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.TokenType != kind.typ:
		return nil, ErrInvalidTokenType
	case claims.UserID == "":
		return nil, ErrInvalidToken
	}
	return claims, nil
}
