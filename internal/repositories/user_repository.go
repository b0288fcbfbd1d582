package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"internship_backend/internal/models"
)

// UserRepository - хранилище учетных записей.
// Каждый вызов получает *gorm.DB, привязанный к контексту запроса.
type UserRepository interface {
	FindByEmailOrIDNumber(db *gorm.DB, email, idNumber string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByID(db *gorm.DB, id string) (*models.User, error)
	UpdateLastLogin(db *gorm.DB, id string, at time.Time) error
	UpdatePasswordHash(db *gorm.DB, id, hash string) error
	SetActive(db *gorm.DB, id string, active bool) error
	CountActiveByRole(db *gorm.DB) (map[models.UserRole]int64, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByEmailOrIDNumber(db *gorm.DB, email, idNumber string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ? OR id_number = ?", email, idNumber).First(&user).Error
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

// Create полагается на уникальные индексы email и id_number: гонка двух
// одновременных регистраций заканчивается ErrUserAlreadyExists, а не дублем.
func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(db *gorm.DB, id string, at time.Time) error {
	return r.update(db, id, map[string]any{"last_login": at})
}

func (r *userRepository) UpdatePasswordHash(db *gorm.DB, id, hash string) error {
	return r.update(db, id, map[string]any{"password_hash": hash})
}

func (r *userRepository) SetActive(db *gorm.DB, id string, active bool) error {
	return r.update(db, id, map[string]any{"is_active": active})
}

func (r *userRepository) CountActiveByRole(db *gorm.DB) (map[models.UserRole]int64, error) {
	var rows []struct {
		Role  models.UserRole
		Count int64
	}
	err := db.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.UserRole]int64, len(models.UserRoles))
	for _, role := range models.UserRoles {
		counts[role] = 0
	}
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

func (r *userRepository) update(db *gorm.DB, id string, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
