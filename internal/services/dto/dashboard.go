package dto

import (
	"internship_backend/internal/models"
)

type DashboardUser struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       models.UserRole `json:"role"`
	Department *string         `json:"department"`
	IDNumber   string          `json:"id_number"`
}

type DashboardResponse struct {
	User  DashboardUser `json:"user"`
	Stats any           `json:"stats"`
}

type StudentStats struct {
	PendingLogs         int64                        `json:"pending_logs"`
	ApprovedLogs        int64                        `json:"approved_logs"`
	RejectedLogs        int64                        `json:"rejected_logs"`
	ApprovedHours       float64                      `json:"approved_hours"`
	UnreadNotifications int64                        `json:"unread_notifications"`
	Assignment          *models.InternshipAssignment `json:"assignment"`
}

type SupervisorStats struct {
	AssignedInterns     int   `json:"assigned_interns"`
	PendingLogs         int64 `json:"pending_logs"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

type CoordinatorStats struct {
	Assignments         map[models.AssignmentStatus]int64 `json:"assignments"`
	UnreadNotifications int64                             `json:"unread_notifications"`
}

type AdminStats struct {
	ActiveUsers map[models.UserRole]int64 `json:"active_users"`
	TotalLogs   int64                     `json:"total_logs"`
}
