package dto

import (
	"io"

	"internship_backend/internal/models"
)

// SubmitLogRequest - поля multipart-формы
type SubmitLogRequest struct {
	Date    string `form:"date" validate:"required,date-only"`
	TimeIn  string `form:"time_in" validate:"required,clock"`
	TimeOut string `form:"time_out" validate:"required,clock"`
	LogText string `form:"log_text" validate:"required,max=10000"`
}

// Attachment - загруженный файл, прочитанный из формы
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type LogListQuery struct {
	StartDate string `form:"startDate" validate:"omitempty,date-only"`
	EndDate   string `form:"endDate" validate:"omitempty,date-only"`
	Status    string `form:"status" validate:"omitempty,is-log-status"`
}

type ReviewLogRequest struct {
	Status string `json:"status" validate:"required,is-review-status"`
}

type SubmitLogResponse struct {
	Message string           `json:"message"`
	Log     *models.DailyLog `json:"log"`
}
