package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для ошибок домена.
Переменные не изменяются: WithDetails и WithError возвращают копию.
*/

// =========================================================================
// Фабричные функции
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Auth
// =========================================================================

var ErrUserAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User with this email or ID number already exists",
	http.StatusConflict,
)

// ErrInvalidCredentials - одинаковый ответ для неизвестного email,
// неактивного пользователя и неверного пароля.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

var ErrAccessTokenRequired = New(
	CodeUnauthorized,
	"auth",
	"Access token required",
	http.StatusUnauthorized,
)

var ErrRefreshTokenRequired = New(
	CodeUnauthorized,
	"auth",
	"Refresh token required",
	http.StatusUnauthorized,
)

var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid refresh token",
	http.StatusUnauthorized,
)

var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired reset token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrMailDelivery - письмо не доставлено (видно только в режиме диагностики).
var ErrMailDelivery = New(
	CodeExternalServiceError,
	"email",
	"Failed to send password reset email",
	http.StatusInternalServerError,
)

// =========================================================================
// Users
// =========================================================================

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"user",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"user",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// =========================================================================
// Attendance и файлы
// =========================================================================

var ErrFileTooLarge = New(
	CodeFileTooLarge,
	"upload",
	"File is too large",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeInvalidFileType,
	"upload",
	"Invalid file type. Only images, PDFs, and Word documents are allowed",
	http.StatusUnsupportedMediaType,
)

var ErrInvalidTimeRange = New(
	CodeValidationFailed,
	"attendance",
	"time_out must be after time_in",
	http.StatusBadRequest,
)

var ErrLogNotFound = New(
	CodeNotFound,
	"attendance",
	"Daily log not found",
	http.StatusNotFound,
)

var ErrNotSupervisor = New(
	CodeForbidden,
	"attendance",
	"Only the assigned supervisor can review this log",
	http.StatusForbidden,
)

var ErrLogAlreadyReviewed = New(
	CodeInvalidStatus,
	"attendance",
	"Daily log has already been reviewed",
	http.StatusConflict,
)

// =========================================================================
// Assignments
// =========================================================================

var ErrAssignmentExists = New(
	CodeAlreadyExists,
	"assignment",
	"Student already has an internship assignment",
	http.StatusConflict,
)

var ErrStudentNotFound = New(
	CodeNotFound,
	"assignment",
	"Student not found",
	http.StatusNotFound,
)

var ErrSupervisorNotFound = New(
	CodeNotFound,
	"assignment",
	"Supervisor not found",
	http.StatusNotFound,
)

// =========================================================================
// Notifications
// =========================================================================

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// =========================================================================
// Инфраструктура
// =========================================================================

var ErrDatabaseTimeout = New(
	CodeDatabaseTimeout,
	"database",
	"Database is busy, try again later",
	http.StatusServiceUnavailable,
)

var ErrTooManyRequests = New(
	CodeRateLimited,
	"request",
	"Too many requests from this IP, please try again later",
	http.StatusTooManyRequests,
)
