package services

import (
	"time"

	"paperdesk_backend/internal/auth"
	"paperdesk_backend/internal/config"
	"paperdesk_backend/internal/email"
	"paperdesk_backend/internal/logger"
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services/dto"
	"paperdesk_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) error
	Login(req *dto.LoginRequest) (*dto.TokenPair, error)
	ActivateAccount(plainToken string, userID uint) error
	ForgotPassword(emailAddr string) error
	ResetPassword(plainToken string, userID uint, newPassword string) error
	RefreshToken(refreshToken string, userID uint) (*dto.TokenPair, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	notifier *email.Notifier
	cfg      *config.Config
}

func NewAuthService(userRepo repositories.UserRepository, notifier *email.Notifier, cfg *config.Config) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	plainToken, digest, err := auth.GenerateOneTimeToken()
	if err != nil {
		return apperrors.InternalError(err)
	}
	expire := time.Now().Add(time.Duration(s.cfg.Tokens.ActivationExpireHours) * time.Hour)

	user := &models.User{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		MobileNumber:     req.MobileNumber,
		Password:         hashed,
		ActivationToken:  &digest,
		ActivationExpire: &expire,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.NewConflictError("users", "An account with this email or mobile number already exists")
		}
		return apperrors.InternalError(err)
	}

	// The account stays registered even when mail delivery fails; the
	// user can request a fresh activation link through support.
	if err := s.notifier.SendActivation(user.Email, user.FullName(), plainToken, user.ID); err != nil {
		logger.GetLogger().Error("activation email failed", "user_id", user.ID, "error", err.Error())
		return apperrors.UpstreamError("email", err)
	}

	return nil
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("User Not Found")
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.IsActive {
		return nil, apperrors.New(apperrors.CodeAccountInactive, "auth", "Account Inactive", 401)
	}
	if user.IsLocked {
		return nil, apperrors.New(apperrors.CodeAccountLocked, "auth", "Account Locked", 401)
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperrors.NewUnauthorizedError("Incorrect Password")
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) ActivateAccount(plainToken string, userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("users", "User not found")
		}
		return apperrors.InternalError(err)
	}

	if !s.tokenMatches(plainToken, user.ActivationToken, user.ActivationExpire) {
		return apperrors.NewBadRequestError("Invalid Account Activation Token")
	}

	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"is_active":         true,
		"is_customer":       true,
		"activation_token":  nil,
		"activation_expire": nil,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ForgotPassword(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("users", "User Account not found")
		}
		return apperrors.InternalError(err)
	}

	if !user.IsActive {
		return apperrors.NewForbiddenError("Account is inactive. Please activate your account.")
	}
	if user.IsLocked {
		return apperrors.NewForbiddenError("Account is locked. Please contact support for assistance.")
	}

	interval := time.Duration(s.cfg.Tokens.ResetIntervalMinutes) * time.Minute
	if user.LastResetRequestAt != nil && user.ResetRequestCount > 0 {
		if since := time.Since(*user.LastResetRequestAt); since < interval {
			return apperrors.NewForbiddenError("Password reset requests are rate limited. Please wait before trying again.")
		}
	}

	// Repeated requests beyond the limit lock the account outright.
	if user.ResetRequestCount >= s.cfg.Tokens.ResetRequestLimit {
		if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"is_locked": true}); err != nil {
			return apperrors.InternalError(err)
		}
		return apperrors.NewForbiddenError("Account has been locked. Please contact support for assistance.")
	}

	plainToken, digest, err := auth.GenerateOneTimeToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	now := time.Now()
	expire := now.Add(time.Duration(s.cfg.Tokens.ResetExpireHours) * time.Hour)

	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"reset_password_token":  digest,
		"reset_password_expire": expire,
		"reset_request_count":   user.ResetRequestCount + 1,
		"last_reset_request_at": now,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.notifier.SendPasswordReset(user.Email, user.FullName(), plainToken, user.ID); err != nil {
		// Roll the token back so a link that never arrived cannot linger.
		clearErr := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
			"reset_password_token":  nil,
			"reset_password_expire": nil,
		})
		if clearErr != nil {
			logger.GetLogger().Error("failed to clear reset token after email failure",
				"user_id", user.ID, "error", clearErr.Error())
		}
		return apperrors.UpstreamError("email", err)
	}

	return nil
}

func (s *AuthServiceImpl) ResetPassword(plainToken string, userID uint, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("users", "User not found")
		}
		return apperrors.InternalError(err)
	}

	if !user.IsActive {
		return apperrors.NewForbiddenError("Account is inactive. Please activate your account.")
	}
	if user.IsLocked {
		return apperrors.NewForbiddenError("Account is locked. Please contact support for assistance.")
	}

	if !s.tokenMatches(plainToken, user.ResetPasswordToken, user.ResetPasswordExpire) {
		return apperrors.NewBadRequestError("Invalid Password Reset Token")
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"password":              hashed,
		"reset_password_token":  nil,
		"reset_password_expire": nil,
		"reset_request_count":   0,
		"last_reset_request_at": nil,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.notifier.SendPasswordChanged(user.Email, user.FullName()); err != nil {
		logger.GetLogger().Warn("password changed email failed", "user_id", user.ID, "error", err.Error())
	}

	return nil
}

func (s *AuthServiceImpl) RefreshToken(refreshToken string, userID uint) (*dto.TokenPair, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Account is inactive. Please activate your account.")
	}
	if user.IsLocked {
		return nil, apperrors.NewForbiddenError("Account is locked. Please contact support for assistance.")
	}

	claims, err := auth.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}
	if claims.UserID != user.ID {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	accessToken, err := auth.GenerateAccessToken(user.ID, user.Email, user.Capabilities())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The original refresh token keeps rolling until it expires.
	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.TokenPair, error) {
	accessToken, err := auth.GenerateAccessToken(user.ID, user.Email, user.Capabilities())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthServiceImpl) tokenMatches(plainToken string, storedDigest *string, expire *time.Time) bool {
	if plainToken == "" || storedDigest == nil || *storedDigest == "" {
		return false
	}
	if expire == nil || expire.Before(time.Now()) {
		return false
	}
	return auth.HashToken(plainToken) == *storedDigest
}
