package models

import (
	"time"

	"gorm.io/datatypes"
)

// DailyLog - ежедневная отметка посещаемости студента
type DailyLog struct {
	BaseModel
	StudentID      string         `gorm:"type:uuid;not null;index" json:"student_id"`
	Date           datatypes.Date `gorm:"not null" json:"date"`
	TimeIn         string         `gorm:"type:varchar(8);not null" json:"time_in"`
	TimeOut        string         `gorm:"type:varchar(8);not null" json:"time_out"`
	Hours          float64        `gorm:"type:numeric(5,2);not null" json:"hours"`
	LogText        string         `gorm:"not null" json:"log_text"`
	AttachmentPath *string        `json:"attachment_path,omitempty"`
	AttachmentURL  *string        `json:"attachment_url,omitempty"`
	ThumbnailURL   *string        `json:"thumbnail_url,omitempty"`
	Status         LogStatus      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewedBy     *string        `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time     `json:"reviewed_at,omitempty"`
}
