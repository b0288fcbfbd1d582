package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"internship_backend/internal/auth"
	"internship_backend/internal/logger"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

// AdminSeed - учетные данные первого администратора
type AdminSeed struct {
	Email    string
	Password string
	IDNumber string
	Name     string
}

type UserService interface {
	SetStatus(ctx context.Context, db *gorm.DB, actor auth.Principal, userID string, active bool) (*dto.UserResponse, error)
	EnsureAdmin(ctx context.Context, db *gorm.DB, seed AdminSeed) error
}

type userService struct {
	userRepo repositories.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	revoker  auth.RefreshRevoker
}

func NewUserService(userRepo repositories.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, revoker auth.RefreshRevoker) UserService {
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		revoker:  revoker,
	}
}

// SetStatus включает или отключает учетную запись.
// При отключении отзываются все refresh-токены пользователя.
func (s *userService) SetStatus(ctx context.Context, db *gorm.DB, actor auth.Principal, userID string, active bool) (*dto.UserResponse, error) {
	if actor.UserID == userID {
		return nil, apperrors.ErrCannotModifySelf
	}

	if err := s.userRepo.SetActive(db, userID, active); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if !active {
		if err := s.revoker.RevokeUser(ctx, userID, s.tokens.RefreshTTL()); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	logger.CtxInfo(ctx, "user status changed", "target_user_id", userID, "is_active", active, "admin_id", actor.UserID)
	return dto.NewUserResponse(user), nil
}

// EnsureAdmin создает первого администратора, если задан email и такого пользователя еще нет.
func (s *userService) EnsureAdmin(ctx context.Context, db *gorm.DB, seed AdminSeed) error {
	email := normalizeEmail(seed.Email)
	if email == "" {
		return nil
	}
	if seed.Password == "" || strings.TrimSpace(seed.IDNumber) == "" {
		return errors.New("first admin requires password and id number")
	}

	existing, err := s.userRepo.FindByEmailOrIDNumber(db, email, seed.IDNumber)
	if err == nil {
		if existing.Role != models.UserRoleAdmin {
			logger.CtxWarn(ctx, "first admin credentials belong to a non-admin user", "email", logger.RedactEmail(email))
		}
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := hashPassword(s.hasher, seed.Password)
	if err != nil {
		return fmt.Errorf("first admin password: %w", err)
	}

	name := seed.Name
	if name == "" {
		name = "Administrator"
	}
	admin := &models.User{
		IDNumber:     strings.TrimSpace(seed.IDNumber),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(db, admin); err != nil {
		// другой экземпляр успел создать администратора
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil
		}
		return err
	}

	logger.CtxInfo(ctx, "first admin created", "user_id", admin.ID, "email", logger.RedactEmail(email))
	return nil
}
