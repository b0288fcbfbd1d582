package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"internship_backend/internal/logger"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

// EventNewNotification - тип WebSocket-события о новом уведомлении
const EventNewNotification = "new-notification"

// Publisher доставляет события живым соединениям пользователя.
// Доставка best-effort: офлайн-пользователь увидит уведомление в списке.
type Publisher interface {
	PublishToUser(userID string, event string, payload any)
}

// NotifyInput - данные нового уведомления
type NotifyInput struct {
	UserID  string
	Type    string
	Title   string
	Message string
	Data    map[string]any
}

type NotificationService interface {
	Notify(ctx context.Context, db *gorm.DB, in NotifyInput) (*models.Notification, error)
	List(ctx context.Context, db *gorm.DB, userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) error
	UnreadCount(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	CleanupRead(ctx context.Context, db *gorm.DB, olderThan time.Duration) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	publisher        Publisher
	now              func() time.Time
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, publisher Publisher) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		now:              time.Now,
	}
}

// Notify сохраняет уведомление и затем публикует его подключенным клиентам.
func (s *notificationService) Notify(ctx context.Context, db *gorm.DB, in NotifyInput) (*models.Notification, error) {
	var data datatypes.JSON
	if in.Data != nil {
		raw, err := json.Marshal(in.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notification data: %w", err)
		}
		data = datatypes.JSON(raw)
	}

	notification := &models.Notification{
		UserID:  in.UserID,
		Type:    in.Type,
		Title:   in.Title,
		Message: in.Message,
		Data:    data,
	}
	if err := s.notificationRepo.Create(db, notification); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishToUser(in.UserID, EventNewNotification, dto.NotificationEvent{
			ID:      notification.ID,
			Type:    notification.Type,
			Title:   notification.Title,
			Message: notification.Message,
			Data:    in.Data,
		})
	}

	logger.CtxDebug(ctx, "notification created", "notification_id", notification.ID, "recipient", in.UserID, "type", in.Type)
	return notification, nil
}

func (s *notificationService) List(ctx context.Context, db *gorm.DB, userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	items, total, err := s.notificationRepo.FindByUser(db, userID, criteria)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Notification{}
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		Total:         total,
		Unread:        unread,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(db, notificationID, userID, s.now())
	if errors.Is(err, repositories.ErrNotificationNotFound) {
		return apperrors.ErrNotificationNotFound
	}
	return err
}

func (s *notificationService) UnreadCount(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return s.notificationRepo.CountUnread(db, userID)
}

// CleanupRead удаляет прочитанные уведомления старше olderThan
func (s *notificationService) CleanupRead(ctx context.Context, db *gorm.DB, olderThan time.Duration) (int64, error) {
	return s.notificationRepo.DeleteReadOlderThan(db, s.now().Add(-olderThan))
}
