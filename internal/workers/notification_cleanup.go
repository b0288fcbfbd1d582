package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"internship_backend/internal/logger"
	"internship_backend/internal/services"
)

const notificationCleanupName = "notification_cleanup"

// NotificationCleanupWorker удаляет прочитанные уведомления старше Retention
type NotificationCleanupWorker struct {
	db        *gorm.DB
	service   services.NotificationService
	interval  time.Duration
	retention time.Duration
	timeout   time.Duration
}

func NewNotificationCleanupWorker(db *gorm.DB, service services.NotificationService, interval, retention time.Duration) *NotificationCleanupWorker {
	return &NotificationCleanupWorker{
		db:        db,
		service:   service,
		interval:  interval,
		retention: retention,
		timeout:   time.Minute,
	}
}

// Start запускает очистку в отдельной горутине. Возвращаемый канал
// закрывается, когда воркер остановлен отменой ctx.
func (w *NotificationCleanupWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.run(ctx)
	}()
	return done
}

func (w *NotificationCleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification cleanup worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет одну итерацию очистки
func (w *NotificationCleanupWorker) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	deleted, err := w.service.CleanupRead(ctx, w.db.WithContext(ctx), w.retention)
	logger.WorkerLog(notificationCleanupName, "delete_read", deleted, err)
}
