package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"internship_backend/internal/auth"
	"internship_backend/internal/imageprocessor"
	"internship_backend/internal/logger"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/internal/storage"
	"internship_backend/internal/validator"
	"internship_backend/pkg/apperrors"
)

const (
	MsgLogSubmitted = "Log submitted successfully"

	attendanceDir = "attendance"
)

// attachmentMIME - допустимые расширения и соответствующие им MIME-типы
var attachmentMIME = map[string][]string{
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
}

func isImageExt(ext string) bool {
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png"
}

type AttendanceOptions struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

type AttendanceService interface {
	Submit(ctx context.Context, db *gorm.DB, studentID string, req *dto.SubmitLogRequest, file *dto.Attachment) (*models.DailyLog, error)
	ListForStudent(ctx context.Context, db *gorm.DB, studentID string, query *dto.LogListQuery) ([]models.DailyLog, error)
	Review(ctx context.Context, db *gorm.DB, reviewer auth.Principal, logID string, status models.LogStatus) (*models.DailyLog, error)
}

type attendanceService struct {
	logRepo        repositories.DailyLogRepository
	assignmentRepo repositories.AssignmentRepository
	notifications  NotificationService
	storage        storage.Storage
	images         *imageprocessor.Processor
	opts           AttendanceOptions
	now            func() time.Time
}

func NewAttendanceService(
	logRepo repositories.DailyLogRepository,
	assignmentRepo repositories.AssignmentRepository,
	notifications NotificationService,
	store storage.Storage,
	images *imageprocessor.Processor,
	opts AttendanceOptions,
) AttendanceService {
	return &attendanceService{
		logRepo:        logRepo,
		assignmentRepo: assignmentRepo,
		notifications:  notifications,
		storage:        store,
		images:         images,
		opts:           opts,
		now:            time.Now,
	}
}

// ComputeHours возвращает длительность смены в часах (2 знака); time_out должен быть позже time_in.
func ComputeHours(timeIn, timeOut string) (float64, error) {
	in, err := validator.ParseClock(timeIn)
	if err != nil {
		return 0, apperrors.ValidationError(map[string]string{"time_in": "Must be a time in HH:MM format"})
	}
	out, err := validator.ParseClock(timeOut)
	if err != nil {
		return 0, apperrors.ValidationError(map[string]string{"time_out": "Must be a time in HH:MM format"})
	}
	if out <= in {
		return 0, apperrors.ErrInvalidTimeRange
	}
	return math.Round((out-in).Hours()*100) / 100, nil
}

func (s *attendanceService) Submit(ctx context.Context, db *gorm.DB, studentID string, req *dto.SubmitLogRequest, file *dto.Attachment) (*models.DailyLog, error) {
	date, err := time.Parse(validator.DateLayout, req.Date)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"date": "Must be a date in YYYY-MM-DD format"})
	}
	hours, err := ComputeHours(req.TimeIn, req.TimeOut)
	if err != nil {
		return nil, err
	}

	log := &models.DailyLog{
		StudentID: studentID,
		Date:      datatypes.Date(date),
		TimeIn:    req.TimeIn,
		TimeOut:   req.TimeOut,
		Hours:     hours,
		LogText:   req.LogText,
		Status:    models.LogStatusPending,
	}

	var stored []string
	if file != nil {
		stored, err = s.storeAttachment(ctx, log, file)
		if err != nil {
			return nil, err
		}
	}

	if err := s.logRepo.Create(db, log); err != nil {
		s.discard(ctx, stored)
		return nil, err
	}

	logger.CtxInfo(ctx, "daily log submitted", "log_id", log.ID, "student_id", studentID, "hours", hours, "attachment", file != nil)

	s.notifySupervisor(ctx, db, log)
	return log, nil
}

// storeAttachment проверяет и сохраняет вложение, для изображений строит миниатюру.
// Возвращает пути сохраненных файлов.
func (s *attendanceService) storeAttachment(ctx context.Context, log *models.DailyLog, file *dto.Attachment) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedMIME, ok := attachmentMIME[ext]
	if !ok || (len(s.opts.AllowedExtensions) > 0 && !slices.Contains(s.opts.AllowedExtensions, ext)) {
		return nil, apperrors.ErrInvalidFileType
	}
	if file.ContentType != "" {
		mediaType, _, err := mime.ParseMediaType(file.ContentType)
		if err != nil || !slices.Contains(allowedMIME, mediaType) {
			return nil, apperrors.ErrInvalidFileType
		}
	}
	if s.opts.MaxFileSize > 0 && file.Size > s.opts.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	limit := s.opts.MaxFileSize
	if limit <= 0 {
		limit = math.MaxInt64 - 1
	}
	content, err := io.ReadAll(io.LimitReader(file.Content, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	if int64(len(content)) > limit {
		return nil, apperrors.ErrFileTooLarge
	}

	name := "attendance-" + uuid.NewString()
	var thumb []byte
	if isImageExt(ext) {
		thumb, err = s.images.Thumbnail(bytes.NewReader(content))
		if err != nil {
			logger.CtxWarn(ctx, "attachment is not a decodable image", "ext", ext, "error", err.Error())
			return nil, apperrors.ErrInvalidFileType
		}
	}

	attachmentPath := attendanceDir + "/" + name + ext
	if err := s.storage.Save(ctx, attachmentPath, bytes.NewReader(content), allowedMIME[0]); err != nil {
		return nil, fmt.Errorf("save attachment: %w", err)
	}
	stored := []string{attachmentPath}

	attachmentURL := s.storage.URL(attachmentPath)
	log.AttachmentPath = &attachmentPath
	log.AttachmentURL = &attachmentURL

	if thumb != nil {
		thumbPath := attendanceDir + "/thumbs/" + name + ".jpg"
		if err := s.storage.Save(ctx, thumbPath, bytes.NewReader(thumb), "image/jpeg"); err != nil {
			s.discard(ctx, stored)
			return nil, fmt.Errorf("save thumbnail: %w", err)
		}
		stored = append(stored, thumbPath)
		thumbURL := s.storage.URL(thumbPath)
		log.ThumbnailURL = &thumbURL
	}

	return stored, nil
}

func (s *attendanceService) discard(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.storage.Delete(context.WithoutCancel(ctx), p); err != nil {
			logger.CtxWithError(ctx, "failed to remove orphaned attachment", err, "path", p)
		}
	}
}

// notifySupervisor уведомляет руководителя студента, если он назначен.
// Журнал уже сохранен, поэтому ошибки уведомления только логируются.
func (s *attendanceService) notifySupervisor(ctx context.Context, db *gorm.DB, log *models.DailyLog) {
	assignment, err := s.assignmentRepo.FindByStudentID(db, log.StudentID)
	if err != nil {
		if !errors.Is(err, repositories.ErrAssignmentNotFound) {
			logger.CtxWithError(ctx, "failed to load assignment for notification", err, "student_id", log.StudentID)
		}
		return
	}
	if assignment.SupervisorID == nil {
		return
	}

	_, err = s.notifications.Notify(ctx, db, NotifyInput{
		UserID:  *assignment.SupervisorID,
		Type:    models.NotificationTypeLog,
		Title:   "New Attendance Log",
		Message: "Student submitted daily log",
		Data:    map[string]any{"log_id": log.ID, "student_id": log.StudentID},
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to notify supervisor", err, "log_id", log.ID)
	}
}

func (s *attendanceService) ListForStudent(ctx context.Context, db *gorm.DB, studentID string, query *dto.LogListQuery) ([]models.DailyLog, error) {
	var filter repositories.LogFilter

	if query.StartDate != "" {
		from, err := time.Parse(validator.DateLayout, query.StartDate)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"startDate": "Must be a date in YYYY-MM-DD format"})
		}
		filter.From = &from
	}
	if query.EndDate != "" {
		to, err := time.Parse(validator.DateLayout, query.EndDate)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"endDate": "Must be a date in YYYY-MM-DD format"})
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperrors.NewBadRequestError("startDate cannot be after endDate")
	}
	if query.Status != "" {
		filter.Status = models.LogStatus(query.Status)
	}

	logs, err := s.logRepo.FindByStudent(db, studentID, filter)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.DailyLog{}
	}
	return logs, nil
}

// Review - решение руководителя по журналу его стажера
func (s *attendanceService) Review(ctx context.Context, db *gorm.DB, reviewer auth.Principal, logID string, status models.LogStatus) (*models.DailyLog, error) {
	if !status.IsReviewDecision() {
		return nil, apperrors.ErrInvalidStatus("attendance", "Status must be approved or rejected")
	}

	log, err := s.logRepo.FindByID(db, logID)
	if err != nil {
		if errors.Is(err, repositories.ErrLogNotFound) {
			return nil, apperrors.ErrLogNotFound
		}
		return nil, err
	}

	assignment, err := s.assignmentRepo.FindByStudentID(db, log.StudentID)
	if err != nil {
		if errors.Is(err, repositories.ErrAssignmentNotFound) {
			return nil, apperrors.ErrNotSupervisor
		}
		return nil, err
	}
	if assignment.SupervisorID == nil || *assignment.SupervisorID != reviewer.UserID {
		return nil, apperrors.ErrNotSupervisor
	}

	now := s.now()
	if err := s.logRepo.UpdateReview(db, log.ID, status, reviewer.UserID, now); err != nil {
		switch {
		case errors.Is(err, repositories.ErrLogAlreadyReviewed):
			return nil, apperrors.ErrLogAlreadyReviewed
		case errors.Is(err, repositories.ErrLogNotFound):
			return nil, apperrors.ErrLogNotFound
		}
		return nil, err
	}

	log.Status = status
	log.ReviewedBy = &reviewer.UserID
	log.ReviewedAt = &now

	_, err = s.notifications.Notify(ctx, db, NotifyInput{
		UserID:  log.StudentID,
		Type:    models.NotificationTypeLogReview,
		Title:   "Attendance Log Reviewed",
		Message: fmt.Sprintf("Your daily log for %s was %s", time.Time(log.Date).Format(validator.DateLayout), status),
		Data:    map[string]any{"log_id": log.ID, "status": status},
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to notify student about review", err, "log_id", log.ID)
	}

	logger.CtxInfo(ctx, "daily log reviewed", "log_id", log.ID, "status", status, "reviewer_id", reviewer.UserID)
	return log, nil
}
