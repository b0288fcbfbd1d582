package validator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"internship_backend/internal/models"
)

const (
	DateLayout = "2006-01-02"
	ClockShort = "15:04"
	ClockLong  = "15:04:05"
)

// registerCustomRules регистрирует кастомные теги. Ошибка регистрации - ошибка
// программиста, поэтому паникуем при старте.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register custom validation tag '%s': %v", tag, err))
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-log-status", validateLogStatus)
	mustRegister("is-review-status", validateReviewStatus)
	mustRegister("clock", validateClock)
	mustRegister("date-only", validateDateOnly)
	mustRegister("max-bytes", validateMaxBytes)
}

// Пустые значения пропускаем, для этого есть 'required'.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserRole(value).IsValid()
}

func validateLogStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.LogStatus(value).IsValid()
}

func validateReviewStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.LogStatus(value).IsReviewDecision()
}

func validateClock(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := ParseClock(value)
	return err == nil
}

func validateDateOnly(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// validateMaxBytes ограничивает длину строки в байтах, а не в рунах (bcrypt режет по 72 байтам).
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("max-bytes: invalid parameter %q", fl.Param()))
	}
	return len(fl.Field().String()) <= limit
}

// ParseClock разбирает "HH:MM" или "HH:MM:SS" и возвращает смещение от полуночи.
func ParseClock(value string) (time.Duration, error) {
	for _, layout := range []string{ClockShort, ClockLong} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid clock value %q", value)
}
