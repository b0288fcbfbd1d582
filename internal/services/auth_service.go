package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"internship_backend/internal/auth"
	"internship_backend/internal/email"
	"internship_backend/internal/logger"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

const (
	MsgUserRegistered   = "User registered successfully"
	MsgResetEmailSent   = "If an account exists, a password reset email has been sent"
	MsgPasswordReset    = "Password has been reset successfully"
	MsgLoggedOut        = "Logged out successfully"
	resetLinkPath       = "/reset-password"
	resetLinkTokenParam = "token"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.RefreshTokenResponse, error)
	ForgotPassword(ctx context.Context, db *gorm.DB, emailAddr string) (*dto.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
}

// AuthOptions - параметры сценариев аутентификации из конфигурации
type AuthOptions struct {
	FrontendURL string
	// Development: ошибки доставки письма возвращаются клиентом как 500
	Development bool
	// ExposeResetToken: режим диагностики, токен возвращается в ответе, письмо не отправляется.
	// Конфигурация разрешает его только в development.
	ExposeResetToken bool
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	tokens    *auth.TokenService
	hasher    *auth.PasswordHasher
	revoker   auth.RefreshRevoker
	mailer    email.Mailer
	templates *email.TemplateManager
	opts      AuthOptions
	now       func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
	revoker auth.RefreshRevoker,
	mailer email.Mailer,
	templates *email.TemplateManager,
	opts AuthOptions,
) AuthService {
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokens:    tokens,
		hasher:    hasher,
		revoker:   revoker,
		mailer:    mailer,
		templates: templates,
		opts:      opts,
		now:       time.Now,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role, err := models.ParseUserRole(req.Role)
	if err != nil {
		return nil, apperrors.ErrInvalidUserRole
	}

	emailAddr := normalizeEmail(req.Email)
	idNumber := strings.TrimSpace(req.IDNumber)

	// Быстрая проверка; окончательно уникальность гарантируют индексы БД
	_, err = s.userRepo.FindByEmailOrIDNumber(db, emailAddr, idNumber)
	switch {
	case err == nil:
		return nil, apperrors.ErrUserAlreadyExists
	case !errors.Is(err, repositories.ErrUserNotFound):
		return nil, err
	}

	hash, err := hashPassword(s.hasher, req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		IDNumber:     idNumber,
		Email:        emailAddr,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Department:   req.Department,
		Role:         role,
		Phone:        req.Phone,
		IsActive:     true,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, err
	}

	logger.CtxInfo(ctx, "user registered",
		"user_id", user.ID,
		"role", user.Role,
		"email", logger.RedactEmail(user.Email),
	)
	return dto.NewUserResponse(user), nil
}

// Login - одинаковая ошибка для неизвестного email, неактивного пользователя и неверного пароля
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.hasher.CompareDummy(req.Password)
			logger.CtxWarn(ctx, "login failed", "reason", "unknown_email", "email", logger.RedactEmail(req.Email))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "login failed", "reason", "wrong_password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		logger.CtxWarn(ctx, "login failed", "reason", "inactive", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(db, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID, "role", user.Role)
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

// RefreshToken выдает новый access-токен. Refresh-токен не ротируется.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.RefreshTokenResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrRefreshTokenRequired
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID, claims.UserID, claims.IssuedAtPrecise())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if revoked {
		logger.CtxWarn(ctx, "revoked refresh token used", "user_id", claims.UserID)
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidToken
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RefreshTokenResponse{AccessToken: accessToken}, nil
}

// ForgotPassword всегда отвечает одним и тем же сообщением, существует email или нет.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, db *gorm.DB, emailAddr string) (*dto.ForgotPasswordResponse, error) {
	resp := &dto.ForgotPasswordResponse{Message: MsgResetEmailSent}

	user, err := s.userRepo.FindByEmail(db, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxInfo(ctx, "password reset requested for unknown email", "email", logger.RedactEmail(emailAddr))
			return resp, nil
		}
		return nil, err
	}

	resetToken, err := s.tokens.IssueResetToken(user.ID, user.PasswordHash)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.opts.ExposeResetToken && s.opts.Development {
		logger.CtxWarn(ctx, "reset token exposed in response (diagnostic mode)", "user_id", user.ID)
		resp.ResetToken = resetToken
		return resp, nil
	}

	if err := s.sendResetEmail(ctx, user, resetToken); err != nil {
		logger.CtxWithError(ctx, "failed to send password reset email", err, "user_id", user.ID)
		if s.opts.Development {
			return nil, apperrors.ErrMailDelivery.WithError(err)
		}
		return resp, nil
	}

	logger.CtxInfo(ctx, "password reset email sent", "user_id", user.ID)
	return resp, nil
}

func (s *AuthServiceImpl) sendResetEmail(ctx context.Context, user *models.User, resetToken string) error {
	link := strings.TrimRight(s.opts.FrontendURL, "/") + resetLinkPath + "?" +
		url.Values{resetLinkTokenParam: {resetToken}}.Encode()

	msg, err := s.templates.PasswordResetMessage(user.Email, user.Name, link, humanDuration(s.tokens.ResetTTL()))
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, msg)
}

// ResetPassword проверяет reset-токен ключом с текущим хешем и сохраняет новый хеш.
// Смена хеша делает недействительными все ранее выданные reset-токены.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error {
	userID, err := s.tokens.ResetTokenSubject(req.Token)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return err
	}

	if _, err := s.tokens.VerifyResetToken(req.Token, user.PasswordHash); err != nil {
		return apperrors.ErrInvalidResetToken
	}

	hash, err := hashPassword(s.hasher, req.Password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePasswordHash(db, user.ID, hash); err != nil {
		return err
	}

	if err := s.revoker.RevokeUser(ctx, user.ID, s.tokens.RefreshTTL()); err != nil {
		// пароль уже изменен; старые refresh-токены доживут до истечения срока
		logger.CtxWithError(ctx, "failed to revoke refresh tokens after password reset", err, "user_id", user.ID)
	}

	logger.CtxInfo(ctx, "password reset", "user_id", user.ID)
	return nil
}

// Logout отзывает refresh-токен по jti до конца срока его действия
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.ErrRefreshTokenRequired
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.revoker.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged out", "user_id", claims.UserID)
	return nil
}

func (s *AuthServiceImpl) CurrentUser(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// hashPassword переводит слишком длинный пароль в ошибку валидации, остальное в 500.
func hashPassword(hasher *auth.PasswordHasher, password string) (string, error) {
	hash, err := hasher.HashPassword(password)
	switch {
	case errors.Is(err, auth.ErrPasswordTooLong):
		return "", apperrors.ValidationError(map[string]string{
			"password": fmt.Sprintf("Must be at most %d bytes long", auth.MaxPasswordBytes),
		})
	case err != nil:
		return "", apperrors.InternalError(err)
	}
	return hash, nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	default:
		return d.String()
	}
}
