package repositories

import (
	"gorm.io/gorm"

	"internship_backend/internal/models"
)

type AssignmentRepository interface {
	Create(db *gorm.DB, assignment *models.InternshipAssignment) error
	FindByStudentID(db *gorm.DB, studentID string) (*models.InternshipAssignment, error)
	FindBySupervisorID(db *gorm.DB, supervisorID string) ([]models.InternshipAssignment, error)
	FindAll(db *gorm.DB) ([]models.InternshipAssignment, error)
	CountByStatus(db *gorm.DB) (map[models.AssignmentStatus]int64, error)
}

type assignmentRepository struct{}

func NewAssignmentRepository() AssignmentRepository {
	return &assignmentRepository{}
}

// Create возвращает ErrAssignmentExists, если у студента уже есть назначение.
func (r *assignmentRepository) Create(db *gorm.DB, assignment *models.InternshipAssignment) error {
	if err := db.Create(assignment).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAssignmentExists
		}
		return err
	}
	return nil
}

func (r *assignmentRepository) FindByStudentID(db *gorm.DB, studentID string) (*models.InternshipAssignment, error) {
	var assignment models.InternshipAssignment
	if err := db.First(&assignment, "student_id = ?", studentID).Error; err != nil {
		return nil, notFound(err, ErrAssignmentNotFound)
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindBySupervisorID(db *gorm.DB, supervisorID string) ([]models.InternshipAssignment, error) {
	var assignments []models.InternshipAssignment
	err := db.Where("supervisor_id = ?", supervisorID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) FindAll(db *gorm.DB) ([]models.InternshipAssignment, error) {
	var assignments []models.InternshipAssignment
	err := db.Order("created_at DESC").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) CountByStatus(db *gorm.DB) (map[models.AssignmentStatus]int64, error) {
	var rows []struct {
		Status models.AssignmentStatus
		Count  int64
	}
	err := db.Model(&models.InternshipAssignment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.AssignmentStatus]int64{
		models.AssignmentStatusPending:   0,
		models.AssignmentStatusActive:    0,
		models.AssignmentStatusCompleted: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
