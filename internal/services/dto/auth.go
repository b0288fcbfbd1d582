package dto

import (
	"time"

	"internship_backend/internal/models"
)

type RegisterRequest struct {
	IDNumber   string  `json:"id_number" validate:"required,max=50"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Password   string  `json:"password" validate:"required,min=6,max-bytes=72"`
	Name       string  `json:"name" validate:"required,max=255"`
	Role       string  `json:"role" validate:"required,is-user-role"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=255"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest: пустой токен проверяется в сервисе и дает 401, а не 400.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max-bytes=72"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserResponse - публичные поля пользователя, без хеша пароля
type UserResponse struct {
	ID         string          `json:"id"`
	IDNumber   string          `json:"id_number"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Department *string         `json:"department"`
	Role       models.UserRole `json:"role"`
	Phone      *string         `json:"phone"`
	IsActive   bool            `json:"is_active"`
	LastLogin  *time.Time      `json:"last_login"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		IDNumber:   u.IDNumber,
		Email:      u.Email,
		Name:       u.Name,
		Department: u.Department,
		Role:       u.Role,
		Phone:      u.Phone,
		IsActive:   u.IsActive,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
	}
}

type RegisterResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

type LoginResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *UserResponse `json:"user"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// ForgotPasswordResponse: ResetToken заполняется только в режиме диагностики.
type ForgotPasswordResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
