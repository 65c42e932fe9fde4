package identity

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/identity"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/auth"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth actions recorded by AuthMetrics
const (
	ActionRegister = "register"
	ActionLogin    = "login"
	ActionRefresh  = "refresh"
)

// AuthMetrics counts authentication attempts
type AuthMetrics interface {
	RecordAuth(ctx context.Context, action string, success bool)
}

// AuthService handles authentication operations
type AuthService struct {
	common.EventSupport
	userRepo     identity.UserRepository
	categoryRepo finance.CategoryRepository
	jwtService   *auth.JWTService
	revocations  auth.Revocations
	metrics      AuthMetrics
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	categoryRepo finance.CategoryRepository,
	jwtService *auth.JWTService,
	revocations auth.Revocations,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		jwtService:   jwtService,
		revocations:  revocations,
		logger:       logger,
	}
}

// SetMetrics sets the optional authentication metrics recorder
func (s *AuthService) SetMetrics(m AuthMetrics) {
	s.metrics = m
}

func (s *AuthService) record(ctx context.Context, action string, err error) {
	if s.metrics != nil {
		s.metrics.RecordAuth(ctx, action, err == nil)
	}
}

// Register creates an account, seeds the default categories and signs the user in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (result *AuthResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "register")
	defer span.End()
	defer func() { s.record(ctx, ActionRegister, err) }()

	if input.Password != input.PasswordConfirmation {
		return nil, shared.NewDomainError("PASSWORD_MISMATCH", "Password confirmation does not match")
	}

	email := identity.NormalizeEmail(input.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	user, err := identity.NewUser(input.Name, email, input.Password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.SaveBatch(ctx, finance.DefaultCategories(user.ID)); err != nil {
		// registration still succeeds without the default set
		s.logger.Error("Failed to seed default categories",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	pair, err := s.jwtService.IssuePair(user.ID, user.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.PublishEvents(ctx, user)
	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))

	return &AuthResult{User: ToUserResponse(user), Token: ToTokenResponse(pair)}, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (result *AuthResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "login")
	defer span.End()
	defer func() { s.record(ctx, ActionLogin, err) }()

	user, err := s.userRepo.FindByEmail(ctx, identity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.ErrInvalidCredentials
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	pair, err := s.jwtService.IssuePair(user.ID, user.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &AuthResult{User: ToUserResponse(user), Token: ToTokenResponse(pair)}, nil
}

// Refresh exchanges a refresh token for a new pair. The used refresh token is
// revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (result *TokenResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "refresh")
	defer span.End()
	defer func() { s.record(ctx, ActionRefresh, err) }()

	claims, err := s.jwtService.ParseRefresh(input.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	if s.revocations != nil && claims.ID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("Revocation lookup failed", zap.Error(err))
		} else if revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TOKEN", "User no longer exists")
		}
		return nil, err
	}

	pair, err := s.jwtService.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	s.revoke(ctx, claims.ID, claims.TTL())

	token := ToTokenResponse(pair)
	return &token, nil
}

// Logout revokes the access token identified by jti until it would expire
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, jti string, ttl time.Duration) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "logout")
	defer span.End()

	if jti == "" {
		return nil
	}
	if s.revocations == nil {
		s.logger.Warn("Logout without a revocation store, token stays valid until expiry")
		return nil
	}
	if ttl <= 0 {
		ttl = s.jwtService.AccessTTL()
	}
	if err := s.revocations.Revoke(ctx, jti, ttl); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", userID.String()))
	return nil
}

func (s *AuthService) revoke(ctx context.Context, jti string, ttl time.Duration) {
	if s.revocations == nil || jti == "" || ttl <= 0 {
		return
	}
	if err := s.revocations.Revoke(ctx, jti, ttl); err != nil {
		s.logger.Warn("Failed to revoke token", zap.Error(err))
	}
}

// Me returns the current user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
