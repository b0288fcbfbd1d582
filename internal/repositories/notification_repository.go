package repositories

import (
	"time"

	"gorm.io/gorm"

	"internship_backend/internal/models"
)

type NotificationCriteria struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	// MarkAsRead отмечает уведомление владельца; чужое уведомление неотличимо от отсутствующего.
	MarkAsRead(db *gorm.DB, id, userID string, at time.Time) error
	CountUnread(db *gorm.DB, userID string) (int64, error)
	DeleteReadOlderThan(db *gorm.DB, before time.Time) (int64, error)
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	scoped := func() *gorm.DB {
		q := db.Model(&models.Notification{}).Where("user_id = ?", userID)
		if criteria.UnreadOnly {
			q = q.Where("is_read = ?", false)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page <= 0 {
		criteria.Page = 1
	}
	if criteria.PageSize <= 0 {
		criteria.PageSize = 20
	}

	var notifications []models.Notification
	err := scoped().Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *notificationRepository) MarkAsRead(db *gorm.DB, id, userID string, at time.Time) error {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"is_read":    true,
			"read_at":    gorm.Expr("COALESCE(read_at, ?)", at),
			"updated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) DeleteReadOlderThan(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Where("is_read = ? AND read_at < ?", true, before).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
