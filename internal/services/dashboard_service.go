package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, db *gorm.DB, userID string) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repos *repositories.Repositories
}

func NewDashboardService(repos *repositories.Repositories) DashboardService {
	return &dashboardService{repos: repos}
}

// GetDashboard собирает сводку для роли пользователя.
// Роль берется из БД, а не из токена.
func (s *dashboardService) GetDashboard(ctx context.Context, db *gorm.DB, userID string) (*dto.DashboardResponse, error) {
	user, err := s.repos.Users.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	var stats any
	switch user.Role {
	case models.UserRoleStudent:
		stats, err = s.studentStats(db, user.ID)
	case models.UserRoleSupervisor:
		stats, err = s.supervisorStats(db, user.ID)
	case models.UserRoleCoordinator:
		stats, err = s.coordinatorStats(db, user.ID)
	case models.UserRoleAdmin:
		stats, err = s.adminStats(db)
	default:
		return nil, apperrors.ErrInvalidUserRole
	}
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		User: dto.DashboardUser{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			Role:       user.Role,
			Department: user.Department,
			IDNumber:   user.IDNumber,
		},
		Stats: stats,
	}, nil
}

func (s *dashboardService) studentStats(db *gorm.DB, studentID string) (*dto.StudentStats, error) {
	counts, err := s.repos.DailyLogs.CountByStatusForStudent(db, studentID)
	if err != nil {
		return nil, err
	}
	hours, err := s.repos.DailyLogs.SumApprovedHours(db, studentID)
	if err != nil {
		return nil, err
	}
	unread, err := s.repos.Notifications.CountUnread(db, studentID)
	if err != nil {
		return nil, err
	}

	assignment, err := s.repos.Assignments.FindByStudentID(db, studentID)
	if err != nil && !errors.Is(err, repositories.ErrAssignmentNotFound) {
		return nil, err
	}

	return &dto.StudentStats{
		PendingLogs:         counts[models.LogStatusPending],
		ApprovedLogs:        counts[models.LogStatusApproved],
		RejectedLogs:        counts[models.LogStatusRejected],
		ApprovedHours:       hours,
		UnreadNotifications: unread,
		Assignment:          assignment,
	}, nil
}

func (s *dashboardService) supervisorStats(db *gorm.DB, supervisorID string) (*dto.SupervisorStats, error) {
	interns, err := s.repos.Assignments.FindBySupervisorID(db, supervisorID)
	if err != nil {
		return nil, err
	}
	pending, err := s.repos.DailyLogs.CountPendingForSupervisor(db, supervisorID)
	if err != nil {
		return nil, err
	}
	unread, err := s.repos.Notifications.CountUnread(db, supervisorID)
	if err != nil {
		return nil, err
	}

	return &dto.SupervisorStats{
		AssignedInterns:     len(interns),
		PendingLogs:         pending,
		UnreadNotifications: unread,
	}, nil
}

func (s *dashboardService) coordinatorStats(db *gorm.DB, coordinatorID string) (*dto.CoordinatorStats, error) {
	byStatus, err := s.repos.Assignments.CountByStatus(db)
	if err != nil {
		return nil, err
	}
	unread, err := s.repos.Notifications.CountUnread(db, coordinatorID)
	if err != nil {
		return nil, err
	}
	return &dto.CoordinatorStats{
		Assignments:         byStatus,
		UnreadNotifications: unread,
	}, nil
}

func (s *dashboardService) adminStats(db *gorm.DB) (*dto.AdminStats, error) {
	active, err := s.repos.Users.CountActiveByRole(db)
	if err != nil {
		return nil, err
	}
	total, err := s.repos.DailyLogs.CountAll(db)
	if err != nil {
		return nil, err
	}
	return &dto.AdminStats{
		ActiveUsers: active,
		TotalLogs:   total,
	}, nil
}
