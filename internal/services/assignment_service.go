package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"internship_backend/internal/auth"
	"internship_backend/internal/logger"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/internal/validator"
	"internship_backend/pkg/apperrors"
)

type AssignmentService interface {
	Create(ctx context.Context, db *gorm.DB, coordinator auth.Principal, req *dto.CreateAssignmentRequest) (*models.InternshipAssignment, error)
	List(ctx context.Context, db *gorm.DB, viewer auth.Principal) ([]models.InternshipAssignment, error)
}

type assignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	userRepo       repositories.UserRepository
}

func NewAssignmentService(assignmentRepo repositories.AssignmentRepository, userRepo repositories.UserRepository) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
	}
}

func (s *assignmentService) Create(ctx context.Context, db *gorm.DB, coordinator auth.Principal, req *dto.CreateAssignmentRequest) (*models.InternshipAssignment, error) {
	startDate, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if startDate != nil && endDate != nil && time.Time(*endDate).Before(time.Time(*startDate)) {
		return nil, apperrors.NewBadRequestError("end_date cannot be before start_date")
	}

	if err := s.requireRole(db, req.StudentID, models.UserRoleStudent, apperrors.ErrStudentNotFound); err != nil {
		return nil, err
	}

	status := models.AssignmentStatusPending
	if req.SupervisorID != nil {
		if err := s.requireRole(db, *req.SupervisorID, models.UserRoleSupervisor, apperrors.ErrSupervisorNotFound); err != nil {
			return nil, err
		}
		status = models.AssignmentStatusActive
	}

	assignment := &models.InternshipAssignment{
		StudentID:     req.StudentID,
		SupervisorID:  req.SupervisorID,
		CoordinatorID: &coordinator.UserID,
		CompanyName:   req.CompanyName,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        status,
	}

	if err := s.assignmentRepo.Create(db, assignment); err != nil {
		if errors.Is(err, repositories.ErrAssignmentExists) {
			return nil, apperrors.ErrAssignmentExists
		}
		return nil, err
	}

	logger.CtxInfo(ctx, "internship assignment created",
		"assignment_id", assignment.ID,
		"student_id", assignment.StudentID,
		"status", assignment.Status,
	)
	return assignment, nil
}

// requireRole проверяет, что пользователь существует, активен и имеет нужную роль.
func (s *assignmentService) requireRole(db *gorm.DB, userID string, role models.UserRole, notFoundErr *apperrors.AppError) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return notFoundErr
		}
		return err
	}
	if user.Role != role || !user.IsActive {
		return notFoundErr
	}
	return nil
}

func (s *assignmentService) List(ctx context.Context, db *gorm.DB, viewer auth.Principal) ([]models.InternshipAssignment, error) {
	var (
		assignments []models.InternshipAssignment
		err         error
	)
	if viewer.Role == models.UserRoleSupervisor {
		assignments, err = s.assignmentRepo.FindBySupervisorID(db, viewer.UserID)
	} else {
		assignments, err = s.assignmentRepo.FindAll(db)
	}
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []models.InternshipAssignment{}
	}
	return assignments, nil
}

func parseOptionalDate(field string, value *string) (*datatypes.Date, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(validator.DateLayout, *value)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{field: "Must be a date in YYYY-MM-DD format"})
	}
	d := datatypes.Date(t)
	return &d, nil
}
