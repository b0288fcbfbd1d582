package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"internship_backend/internal/auth"
	"internship_backend/internal/imageprocessor"
	"internship_backend/internal/mocks"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

type attendanceFixture struct {
	svc           *attendanceService
	logs          *mocks.MockDailyLogRepository
	assignments   *mocks.MockAssignmentRepository
	notifications *mocks.MockNotificationRepository
	publisher     *mocks.MockPublisher
	storage       *mocks.MockStorage
	db            *gorm.DB
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &attendanceFixture{
		logs:          mocks.NewMockDailyLogRepository(ctrl),
		assignments:   mocks.NewMockAssignmentRepository(ctrl),
		notifications: mocks.NewMockNotificationRepository(ctrl),
		publisher:     mocks.NewMockPublisher(ctrl),
		storage:       mocks.NewMockStorage(ctrl),
		db:            &gorm.DB{},
	}
	notificationService := NewNotificationService(f.notifications, f.publisher)
	f.svc = NewAttendanceService(
		f.logs,
		f.assignments,
		notificationService,
		f.storage,
		imageprocessor.NewProcessor(300, 80),
		AttendanceOptions{
			MaxFileSize:       1024 * 1024,
			AllowedExtensions: []string{".jpeg", ".jpg", ".png", ".pdf", ".doc", ".docx"},
		},
	).(*attendanceService)
	return f
}

func validLogRequest() *dto.SubmitLogRequest {
	return &dto.SubmitLogRequest{
		Date:    "2024-03-01",
		TimeIn:  "09:00",
		TimeOut: "17:30",
		LogText: "Worked on onboarding tasks",
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	return buf.Bytes()
}

// oversizedPNG - PNG в несколько сотен байт, заголовок которого объявляет 8000x8000.
func oversizedPNG(t *testing.T) []byte {
	t.Helper()
	data := pngBytes(t)
	binary.BigEndian.PutUint32(data[16:20], 8000)
	binary.BigEndian.PutUint32(data[20:24], 8000)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestComputeHours(t *testing.T) {
	hours, err := ComputeHours("09:00", "17:30")
	require.NoError(t, err)
	assert.Equal(t, 8.5, hours)

	hours, err = ComputeHours("09:00", "09:20")
	require.NoError(t, err)
	assert.Equal(t, 0.33, hours)

	_, err = ComputeHours("10:00", "10:00")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTimeRange)

	_, err = ComputeHours("18:00", "09:00")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTimeRange)
}

func TestSubmit_NotifiesSupervisor(t *testing.T) {
	f := newAttendanceFixture(t)
	ctx := context.Background()
	supervisorID := "sup-1"

	f.logs.EXPECT().Create(f.db, gomock.Any()).DoAndReturn(func(_ *gorm.DB, log *models.DailyLog) error {
		assert.Equal(t, "stu-1", log.StudentID)
		assert.Equal(t, 8.5, log.Hours)
		assert.Equal(t, models.LogStatusPending, log.Status)
		assert.Nil(t, log.AttachmentURL)
		log.ID = "log-1"
		return nil
	})
	f.assignments.EXPECT().FindByStudentID(f.db, "stu-1").Return(&models.InternshipAssignment{
		StudentID:    "stu-1",
		SupervisorID: &supervisorID,
	}, nil)
	f.notifications.EXPECT().Create(f.db, gomock.Any()).DoAndReturn(func(_ *gorm.DB, n *models.Notification) error {
		assert.Equal(t, supervisorID, n.UserID)
		assert.Equal(t, models.NotificationTypeLog, n.Type)
		assert.Equal(t, "New Attendance Log", n.Title)
		assert.Contains(t, string(n.Data), `"log_id":"log-1"`)
		n.ID = "n-1"
		return nil
	})
	f.publisher.EXPECT().PublishToUser(supervisorID, EventNewNotification, gomock.Any())

	log, err := f.svc.Submit(ctx, f.db, "stu-1", validLogRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, "log-1", log.ID)
}

func TestSubmit_WithoutAssignmentSkipsNotification(t *testing.T) {
	f := newAttendanceFixture(t)

	f.logs.EXPECT().Create(f.db, gomock.Any()).Return(nil)
	f.assignments.EXPECT().FindByStudentID(f.db, "stu-1").Return(nil, repositories.ErrAssignmentNotFound)

	_, err := f.svc.Submit(context.Background(), f.db, "stu-1", validLogRequest(), nil)
	require.NoError(t, err)
}

func TestSubmit_NotificationFailureIsNotFatal(t *testing.T) {
	f := newAttendanceFixture(t)
	supervisorID := "sup-1"

	f.logs.EXPECT().Create(f.db, gomock.Any()).Return(nil)
	f.assignments.EXPECT().FindByStudentID(f.db, "stu-1").Return(&models.InternshipAssignment{SupervisorID: &supervisorID}, nil)
	f.notifications.EXPECT().Create(f.db, gomock.Any()).Return(errors.New("db down"))

	_, err := f.svc.Submit(context.Background(), f.db, "stu-1", validLogRequest(), nil)
	require.NoError(t, err)
}

func TestSubmit_InvalidTimeRange(t *testing.T) {
	f := newAttendanceFixture(t)
	req := validLogRequest()
	req.TimeOut = "08:00"

	_, err := f.svc.Submit(context.Background(), f.db, "stu-1", req, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTimeRange)
}

func TestSubmit_ImageAttachment(t *testing.T) {
	f := newAttendanceFixture(t)

	var saved []string
	f.storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string, _ any, _ string) error {
			saved = append(saved, path)
			return nil
		}).Times(2)
	f.storage.EXPECT().URL(gomock.Any()).DoAndReturn(func(p string) string { return "/uploads/" + p }).Times(2)
	f.logs.EXPECT().Create(f.db, gomock.Any()).DoAndReturn(func(_ *gorm.DB, log *models.DailyLog) error {
		require.NotNil(t, log.AttachmentURL)
		require.NotNil(t, log.ThumbnailURL)
		assert.True(t, strings.HasPrefix(*log.AttachmentURL, "/uploads/attendance/attendance-"))
		assert.True(t, strings.HasSuffix(*log.AttachmentURL, ".png"))
		assert.True(t, strings.HasPrefix(*log.ThumbnailURL, "/uploads/attendance/thumbs/attendance-"))
		return nil
	})
	f.assignments.EXPECT().FindByStudentID(f.db, "stu-1").Return(nil, repositories.ErrAssignmentNotFound)

	content := pngBytes(t)
	_, err := f.svc.Submit(context.Background(), f.db, "stu-1", validLogRequest(), &dto.Attachment{
		Filename:    "proof.PNG",
		ContentType: "image/png",
		Size:        int64(len(content)),
		Content:     bytes.NewReader(content),
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
}

func TestSubmit_AttachmentRejected(t *testing.T) {
	cases := map[string]struct {
		file *dto.Attachment
		want *apperrors.AppError
	}{
		"extension": {
			file: &dto.Attachment{Filename: "run.exe", ContentType: "application/octet-stream", Content: strings.NewReader("x")},
			want: apperrors.ErrInvalidFileType,
		},
		"mime mismatch": {
			file: &dto.Attachment{Filename: "report.docx", ContentType: "application/pdf", Content: strings.NewReader("x")},
			want: apperrors.ErrInvalidFileType,
		},
		"too large": {
			file: &dto.Attachment{Filename: "report.pdf", ContentType: "application/pdf", Size: 2 * 1024 * 1024, Content: strings.NewReader("x")},
			want: apperrors.ErrFileTooLarge,
		},
		"image dimensions over limit": {
			file: &dto.Attachment{Filename: "bomb.png", ContentType: "image/png", Content: bytes.NewReader(oversizedPNG(t))},
			want: apperrors.ErrInvalidFileType,
		},
		"not an image": {
			file: &dto.Attachment{Filename: "photo.jpg", ContentType: "image/jpeg", Size: 4, Content: strings.NewReader("nope")},
			want: apperrors.ErrInvalidFileType,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newAttendanceFixture(t)
			_, err := f.svc.Submit(context.Background(), f.db, "stu-1", validLogRequest(), tc.file)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSubmit_DocxAccepted(t *testing.T) {
	f := newAttendanceFixture(t)

	f.storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(),
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document").Return(nil)
	f.storage.EXPECT().URL(gomock.Any()).Return("/uploads/x.docx")
	f.logs.EXPECT().Create(f.db, gomock.Any()).DoAndReturn(func(_ *gorm.DB, log *models.DailyLog) error {
		assert.Nil(t, log.ThumbnailURL)
		return nil
	})
	f.assignments.EXPECT().FindByStudentID(f.db, "stu-1").Return(nil, repositories.ErrAssignmentNotFound)

	_, err := f.svc.Submit(context.Background(), f.db, "stu-1", validLogRequest(), &dto.Attachment{
		Filename:    "report.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Size:        3,
		Content:     strings.NewReader("doc"),
	})
	require.NoError(t, err)
}

func TestSubmit_InsertFailureRemovesFile(t *testing.T) {
	f := newAttendanceFixture(t)
	var savedPath string

	f.storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), "application/pdf").
		DoAndReturn(func(_ context.Context, path string, _ any, _ string) error {
			savedPath = path
			return nil
		})
	f.storage.EXPECT().URL(gomock.Any()).Return("/uploads/x.pdf")
	f.logs.EXPECT().Create(f.db, gomock.Any()).Return(errors.New("insert failed"))
	f.storage.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, path string) error {
		assert.Equal(t, savedPath, path)
		return nil
	})

	_, err := f.svc.Submit(context.Background(), f.db, "stu-1", validLogRequest(), &dto.Attachment{
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Size:        3,
		Content:     strings.NewReader("pdf"),
	})
	require.Error(t, err)
}

func TestListForStudent(t *testing.T) {
	f := newAttendanceFixture(t)

	f.logs.EXPECT().FindByStudent(f.db, "stu-1", gomock.Any()).DoAndReturn(
		func(_ *gorm.DB, _ string, filter repositories.LogFilter) ([]models.DailyLog, error) {
			require.NotNil(t, filter.From)
			assert.Nil(t, filter.To)
			assert.Equal(t, models.LogStatusApproved, filter.Status)
			return nil, nil
		})

	logs, err := f.svc.ListForStudent(context.Background(), f.db, "stu-1", &dto.LogListQuery{StartDate: "2024-03-01", Status: "approved"})
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)

	_, err = f.svc.ListForStudent(context.Background(), f.db, "stu-1", &dto.LogListQuery{StartDate: "2024-03-05", EndDate: "2024-03-01"})
	assert.Error(t, err)
}

func TestReview(t *testing.T) {
	supervisorID := "sup-1"
	reviewer := auth.Principal{UserID: supervisorID, Role: models.UserRoleSupervisor}
	pending := func() *models.DailyLog {
		return &models.DailyLog{
			BaseModel: models.BaseModel{ID: "log-1"},
			StudentID: "stu-1",
			Status:    models.LogStatusPending,
		}
	}

	t.Run("approved by supervisor", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.logs.EXPECT().FindByID(f.db, "log-1").Return(pending(), nil)
		f.assignments.EXPECT().FindByStudentID(f.db, "stu-1").Return(&models.InternshipAssignment{SupervisorID: &supervisorID}, nil)
		f.logs.EXPECT().UpdateReview(f.db, "log-1", models.LogStatusApproved, supervisorID, gomock.Any()).Return(nil)
		f.notifications.EXPECT().Create(f.db, gomock.Any()).DoAndReturn(func(_ *gorm.DB, n *models.Notification) error {
			assert.Equal(t, "stu-1", n.UserID)
			assert.Equal(t, models.NotificationTypeLogReview, n.Type)
			return nil
		})
		f.publisher.EXPECT().PublishToUser("stu-1", EventNewNotification, gomock.Any())

		log, err := f.svc.Review(context.Background(), f.db, reviewer, "log-1", models.LogStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, models.LogStatusApproved, log.Status)
		require.NotNil(t, log.ReviewedAt)
		assert.WithinDuration(t, time.Now(), *log.ReviewedAt, time.Minute)
	})

	t.Run("other supervisor", func(t *testing.T) {
		f := newAttendanceFixture(t)
		other := "sup-2"
		f.logs.EXPECT().FindByID(f.db, "log-1").Return(pending(), nil)
		f.assignments.EXPECT().FindByStudentID(f.db, "stu-1").Return(&models.InternshipAssignment{SupervisorID: &other}, nil)

		_, err := f.svc.Review(context.Background(), f.db, reviewer, "log-1", models.LogStatusApproved)
		assert.ErrorIs(t, err, apperrors.ErrNotSupervisor)
	})

	t.Run("already reviewed", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.logs.EXPECT().FindByID(f.db, "log-1").Return(pending(), nil)
		f.assignments.EXPECT().FindByStudentID(f.db, "stu-1").Return(&models.InternshipAssignment{SupervisorID: &supervisorID}, nil)
		f.logs.EXPECT().UpdateReview(f.db, "log-1", models.LogStatusRejected, supervisorID, gomock.Any()).Return(repositories.ErrLogAlreadyReviewed)

		_, err := f.svc.Review(context.Background(), f.db, reviewer, "log-1", models.LogStatusRejected)
		assert.ErrorIs(t, err, apperrors.ErrLogAlreadyReviewed)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		f := newAttendanceFixture(t)
		_, err := f.svc.Review(context.Background(), f.db, reviewer, "log-1", models.LogStatusPending)
		assert.Error(t, err)
	})

	t.Run("missing log", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.logs.EXPECT().FindByID(f.db, "nope").Return(nil, repositories.ErrLogNotFound)

		_, err := f.svc.Review(context.Background(), f.db, reviewer, "nope", models.LogStatusApproved)
		assert.ErrorIs(t, err, apperrors.ErrLogNotFound)
	})
}
