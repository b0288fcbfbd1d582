package dto

import "internship_backend/internal/models"

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Unread        int64                 `json:"unread"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"page_size"`
}

// NotificationEvent - событие "new-notification" для WebSocket-клиентов
type NotificationEvent struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
