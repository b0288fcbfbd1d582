package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"internship_backend/internal/mocks"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

func TestNotify_PersistsThenPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	svc := NewNotificationService(repo, publisher)
	db := &gorm.DB{}

	gomock.InOrder(
		repo.EXPECT().Create(db, gomock.Any()).DoAndReturn(func(_ *gorm.DB, n *models.Notification) error {
			n.ID = "n-1"
			return nil
		}),
		publisher.EXPECT().PublishToUser("u1", EventNewNotification, gomock.Any()).Do(func(_, _ string, payload any) {
			event, ok := payload.(dto.NotificationEvent)
			require.True(t, ok)
			assert.Equal(t, "n-1", event.ID)
			assert.Equal(t, map[string]any{"k": "x"}, event.Data)
		}),
	)

	n, err := svc.Notify(context.Background(), db, NotifyInput{
		UserID: "u1", Type: models.NotificationTypeLog, Title: "T", Message: "M", Data: map[string]any{"k": "x"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"x"}`, string(n.Data))
}

func TestNotificationList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	svc := NewNotificationService(repo, nil)
	db := &gorm.DB{}
	criteria := repositories.NotificationCriteria{UnreadOnly: true, Page: 1, PageSize: 20}

	repo.EXPECT().FindByUser(db, "u1", criteria).Return(nil, int64(0), nil)
	repo.EXPECT().CountUnread(db, "u1").Return(int64(0), nil)

	resp, err := svc.List(context.Background(), db, "u1", criteria)
	require.NoError(t, err)
	assert.NotNil(t, resp.Notifications)
	assert.Equal(t, 20, resp.PageSize)
}

func TestMarkAsRead_ForeignNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	svc := NewNotificationService(repo, nil)
	db := &gorm.DB{}

	repo.EXPECT().MarkAsRead(db, "n-1", "u2", gomock.Any()).Return(repositories.ErrNotificationNotFound)

	err := svc.MarkAsRead(context.Background(), db, "u2", "n-1")
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestCleanupRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	svc := NewNotificationService(repo, nil)
	db := &gorm.DB{}

	repo.EXPECT().DeleteReadOlderThan(db, gomock.Any()).DoAndReturn(func(_ *gorm.DB, before time.Time) (int64, error) {
		assert.WithinDuration(t, time.Now().Add(-48*time.Hour), before, time.Minute)
		return 3, nil
	})

	n, err := svc.CleanupRead(context.Background(), db, 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
