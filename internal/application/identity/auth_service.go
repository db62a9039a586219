package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/identity"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	InviteCode       string        // required to create an account; empty disables sign-up
	MaxLoginAttempts int           // failed sign-ins before the account is locked
	LockDuration     time.Duration // how long a locked account stays locked
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// ErrSignUpDisabled is returned when no invite code is configured
var ErrSignUpDisabled = shared.NewDomainError("SIGN_UP_DISABLED", "Sign-up is disabled")

// AuthService handles admin authentication
type AuthService struct {
	userRepo    identity.UserRepository
	jwtService  *auth.JWTService
	revocations auth.RevocationList
	config      AuthServiceConfig
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	revocations auth.RevocationList,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if revocations == nil {
		revocations = auth.NewInMemoryRevocationList()
	}
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		revocations: revocations,
		config:      config,
		logger:      logger,
	}
}

// SignUp creates an admin account when the invite code matches.
// The code is compared in constant time on the server.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*SessionResponse, error) {
	if s.config.InviteCode == "" {
		return nil, ErrSignUpDisabled
	}
	if subtle.ConstantTimeCompare([]byte(req.InviteCode), []byte(s.config.InviteCode)) != 1 {
		s.logger.Warn("Sign-up with invalid invite code", zap.String("email", req.Email))
		return nil, identity.ErrInvalidInviteCode
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, identity.ErrEmailTaken
	}

	user, err := identity.NewAdminUser(email, req.Password)
	if err != nil {
		return nil, err
	}
	user.RecordSignInSuccess()
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create admin user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Admin account created", zap.String("user_id", user.ID.String()))
	return s.issueSession(user)
}

// SignIn verifies the credentials and issues an access token. Repeated
// failures lock the account for the configured duration.
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Sign-in for unknown email", zap.String("email", email))
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsLocked() {
		s.logger.Warn("Sign-in attempt for locked account", zap.String("user_id", user.ID.String()))
		return nil, identity.ErrAccountLocked
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordSignInFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to update user after sign-in failure", zap.Error(err))
		}
		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("user_id", user.ID.String()),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, identity.ErrAccountLocked
		}
		return nil, identity.ErrInvalidCredentials
	}

	user.RecordSignInSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// the session is still valid; only the bookkeeping failed
		s.logger.Error("Failed to update user after successful sign-in", zap.Error(err))
	}

	s.logger.Info("Admin signed in", zap.String("user_id", user.ID.String()))
	return s.issueSession(user)
}

// SignOut revokes the token until it would have expired
func (s *AuthService) SignOut(ctx context.Context, in SignOutInput) error {
	if in.TokenID == "" {
		return shared.ErrInvalidInput.WithMessage("Token has no id")
	}
	ttl := time.Until(in.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, in.TokenID, ttl); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return err
	}
	return nil
}

// CurrentUser returns the admin behind a validated token
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

func (s *AuthService) issueSession(user *identity.AdminUser) (*SessionResponse, error) {
	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}
	return &SessionResponse{
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        toUserInfo(user),
	}, nil
}

func toUserInfo(user *identity.AdminUser) UserInfo {
	return UserInfo{
		ID:           user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		LastSignInAt: user.LastSignInAt,
	}
}
