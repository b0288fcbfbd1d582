package repositories

import (
	"time"

	"gorm.io/gorm"

	"internship_backend/internal/models"
)

// LogFilter - необязательные условия выборки журналов студента.
type LogFilter struct {
	From   *time.Time
	To     *time.Time
	Status models.LogStatus
}

type DailyLogRepository interface {
	Create(db *gorm.DB, log *models.DailyLog) error
	FindByID(db *gorm.DB, id string) (*models.DailyLog, error)
	FindByStudent(db *gorm.DB, studentID string, filter LogFilter) ([]models.DailyLog, error)
	UpdateReview(db *gorm.DB, id string, status models.LogStatus, reviewerID string, at time.Time) error
	CountByStatusForStudent(db *gorm.DB, studentID string) (map[models.LogStatus]int64, error)
	SumApprovedHours(db *gorm.DB, studentID string) (float64, error)
	CountPendingForSupervisor(db *gorm.DB, supervisorID string) (int64, error)
	CountAll(db *gorm.DB) (int64, error)
}

type dailyLogRepository struct{}

func NewDailyLogRepository() DailyLogRepository {
	return &dailyLogRepository{}
}

func (r *dailyLogRepository) Create(db *gorm.DB, log *models.DailyLog) error {
	return db.Create(log).Error
}

func (r *dailyLogRepository) FindByID(db *gorm.DB, id string) (*models.DailyLog, error) {
	var log models.DailyLog
	if err := db.First(&log, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrLogNotFound)
	}
	return &log, nil
}

func (r *dailyLogRepository) FindByStudent(db *gorm.DB, studentID string, filter LogFilter) ([]models.DailyLog, error) {
	query := db.Where("student_id = ?", studentID)

	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var logs []models.DailyLog
	err := query.Order("date DESC").Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// UpdateReview меняет статус только у журнала в статусе pending.
func (r *dailyLogRepository) UpdateReview(db *gorm.DB, id string, status models.LogStatus, reviewerID string, at time.Time) error {
	result := db.Model(&models.DailyLog{}).
		Where("id = ? AND status = ?", id, models.LogStatusPending).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": at,
			"updated_at":  at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.DailyLog{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrLogNotFound
		}
		return ErrLogAlreadyReviewed
	}
	return nil
}

func (r *dailyLogRepository) CountByStatusForStudent(db *gorm.DB, studentID string) (map[models.LogStatus]int64, error) {
	var rows []struct {
		Status models.LogStatus
		Count  int64
	}
	err := db.Model(&models.DailyLog{}).
		Select("status, COUNT(*) AS count").
		Where("student_id = ?", studentID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.LogStatus]int64{
		models.LogStatusPending:  0,
		models.LogStatusApproved: 0,
		models.LogStatusRejected: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *dailyLogRepository) SumApprovedHours(db *gorm.DB, studentID string) (float64, error) {
	var total float64
	err := db.Model(&models.DailyLog{}).
		Select("COALESCE(SUM(hours), 0)").
		Where("student_id = ? AND status = ?", studentID, models.LogStatusApproved).
		Scan(&total).Error
	return total, err
}

func (r *dailyLogRepository) CountPendingForSupervisor(db *gorm.DB, supervisorID string) (int64, error) {
	var count int64
	err := db.Model(&models.DailyLog{}).
		Joins("JOIN internship_assignments ia ON ia.student_id = daily_logs.student_id").
		Where("ia.supervisor_id = ? AND daily_logs.status = ?", supervisorID, models.LogStatusPending).
		Count(&count).Error
	return count, err
}

func (r *dailyLogRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.DailyLog{}).Count(&count).Error
	return count, err
}
