package models

import "time"

// User - учетная запись. Не удаляется физически, только деактивируется через IsActive.
type User struct {
	BaseModel
	IDNumber     string   `gorm:"column:id_number;uniqueIndex;not null"`
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Name         string   `gorm:"not null"`
	Department   *string
	Role         UserRole `gorm:"type:varchar(20);not null"`
	Phone        *string
	IsActive     bool `gorm:"not null;default:true"`
	LastLogin    *time.Time
}
