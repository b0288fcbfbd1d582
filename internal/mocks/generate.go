package mocks

//go:generate mockgen -destination=user_repository.go -package=mocks internship_backend/internal/repositories UserRepository
//go:generate mockgen -destination=assignment_repository.go -package=mocks internship_backend/internal/repositories AssignmentRepository
//go:generate mockgen -destination=daily_log_repository.go -package=mocks internship_backend/internal/repositories DailyLogRepository
//go:generate mockgen -destination=notification_repository.go -package=mocks internship_backend/internal/repositories NotificationRepository
//go:generate mockgen -destination=mailer.go -package=mocks internship_backend/internal/email Mailer
//go:generate mockgen -destination=refresh_revoker.go -package=mocks internship_backend/internal/auth RefreshRevoker
//go:generate mockgen -destination=publisher.go -package=mocks internship_backend/internal/services Publisher
//go:generate mockgen -destination=storage.go -package=mocks internship_backend/internal/storage Storage
