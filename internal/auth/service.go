package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	pkgauth "github.com/RedaKaafarani1/ecomwebsite/pkg/auth"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/auth/session"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/config"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/db"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/email"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/security"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/validation"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const resetTokenTTL = 30 * time.Minute

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type resetTokenStore interface {
	StoreResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

type profileWriter interface {
	Upsert(ctx context.Context, profile *models.CustomerProfile) error
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	UserRepo    Repository
	Profiles    profileWriter
	Sessions    sessionManager
	RateLimiter rateLimiter
	ResetStore  resetTokenStore
	Sender      email.Sender
	JWT         config.JWTConfig
	Password    config.PasswordConfig
	RateLimits  config.AuthRateLimitConfig
	EmailCfg    config.EmailConfig
	Tx          txRunner
	Logger      *logger.Logger
}

// Service exposes account lifecycle and session issuance.
type Service interface {
	Register(ctx context.Context, input RegisterInput, clientIP string) (*SessionDTO, error)
	Login(ctx context.Context, creds Credentials, clientIP string) (*SessionDTO, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*SessionDTO, error)
	Logout(ctx context.Context, accessID string) error
	RequestPasswordReset(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	userRepo   Repository
	profiles   profileWriter
	sessions   sessionManager
	limiter    rateLimiter
	resetStore resetTokenStore
	sender     email.Sender
	jwtCfg     config.JWTConfig
	pwCfg      config.PasswordConfig
	rlCfg      config.AuthRateLimitConfig
	emailCfg   config.EmailConfig
	tx         txRunner
	logg       *logger.Logger
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.Profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile writer is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if params.RateLimiter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate limiter is required")
	}
	if params.ResetStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reset token store is required")
	}
	if params.Sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email sender is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		userRepo:   params.UserRepo,
		profiles:   params.Profiles,
		sessions:   params.Sessions,
		limiter:    params.RateLimiter,
		resetStore: params.ResetStore,
		sender:     params.Sender,
		jwtCfg:     params.JWT,
		pwCfg:      params.Password,
		rlCfg:      params.RateLimits,
		emailCfg:   params.EmailCfg,
		tx:         params.Tx,
		logg:       params.Logger,
	}, nil
}

// Register validates the submission, creates the account with its profile
// row, and signs the new customer in.
func (s *service) Register(ctx context.Context, input RegisterInput, clientIP string) (*SessionDTO, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))
	if !validation.ValidEmail(emailAddr) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email address is required")
	}
	if strength := validation.CheckPassword(input.Password); !strength.OK() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"password must be at least 8 characters with upper and lower case letters and a digit")
	}
	firstName := validation.SanitizeText(input.FirstName)
	lastName := validation.SanitizeText(input.LastName)
	if firstName != "" && !validation.ValidName(firstName) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name must be 2-50 letters")
	}
	if lastName != "" && !validation.ValidName(lastName) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name must be 2-50 letters")
	}

	if err := s.allow(ctx, "register:email:"+emailAddr, int64(s.rlCfg.RegisterEmailLimit), s.rlCfg.RegisterWindow); err != nil {
		return nil, err
	}
	if err := s.allow(ctx, "register:ip:"+clientIP, int64(s.rlCfg.RegisterIPLimit), s.rlCfg.RegisterWindow); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        emailAddr,
		PasswordHash: hash,
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).CreateUser(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an account with this email already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create account")
		}
		return s.profiles.Upsert(ctx, &models.CustomerProfile{
			UserID:    user.ID,
			FirstName: firstName,
			LastName:  lastName,
			Email:     emailAddr,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user)
}

// Login verifies the credentials and issues a fresh session. Unknown emails
// and wrong passwords produce the same error.
func (s *service) Login(ctx context.Context, creds Credentials, clientIP string) (*SessionDTO, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(creds.Email))
	if emailAddr == "" || creds.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if err := s.allow(ctx, "login:email:"+emailAddr, int64(s.rlCfg.LoginEmailLimit), s.rlCfg.LoginWindow); err != nil {
		return nil, err
	}
	if err := s.allow(ctx, "login:ip:"+clientIP, int64(s.rlCfg.LoginIPLimit), s.rlCfg.LoginWindow); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up account")
	}

	ok, err := security.VerifyPassword(creds.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		s.logg.Error(ctx, "recording last login failed", err)
	}

	return s.issueSession(ctx, user)
}

// Refresh rotates the refresh token and mints a new access token. The old
// access token may be expired but must be otherwise valid.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*SessionDTO, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "access and refresh tokens are required")
	}

	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	minted, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Email:  claims.Email,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &SessionDTO{
		AccessToken:  minted,
		RefreshToken: newRefresh,
		User:         UserDTO{ID: claims.UserID, Email: claims.Email},
	}, nil
}

// Logout revokes the refresh session tied to the access token's jti.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// RequestPasswordReset issues a one-time token and emails it. It reports
// success for unknown addresses so callers cannot probe for accounts.
func (s *service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if !validation.ValidEmail(emailAddr) {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid email address is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up account")
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}
	if err := s.resetStore.StoreResetToken(ctx, token, user.ID.String(), resetTokenTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reset token")
	}

	err = s.sender.Send(ctx, email.SendRequest{
		TemplateID: s.emailCfg.ResetTemplateID,
		To:         emailAddr,
		Params: map[string]string{
			"reset_token": token,
		},
	})
	if err != nil {
		s.logg.Error(ctx, "password reset email send failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send reset email")
	}
	return nil
}

// ResetPassword consumes the one-time token and stores the new hash.
func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "reset token is required")
	}
	if strength := validation.CheckPassword(newPassword); !strength.OK() {
		return pkgerrors.New(pkgerrors.CodeValidation,
			"password must be at least 8 characters with upper and lower case letters and a digit")
	}

	userIDValue, err := s.resetStore.ConsumeResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume reset token")
	}
	userID, err := uuid.Parse(userIDValue)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stored reset token is malformed")
	}

	hash, err := security.HashPassword(newPassword, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return nil
}

func (s *service) issueSession(ctx context.Context, user *models.User) (*SessionDTO, error) {
	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create refresh session")
	}

	return &SessionDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         UserDTO{ID: user.ID, Email: user.Email},
	}, nil
}

func (s *service) allow(ctx context.Context, scope string, limit int64, window time.Duration) error {
	if limit <= 0 {
		return nil
	}
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, scope, limit, window)
	if err != nil {
		s.logg.Error(ctx, "rate limit check failed", err)
		return nil
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later")
	}
	return nil
}
