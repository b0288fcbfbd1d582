package services

import (
	"internship_backend/internal/auth"
	"internship_backend/internal/email"
	"internship_backend/internal/imageprocessor"
	"internship_backend/internal/repositories"
	"internship_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	AttendanceService   AttendanceService
	AssignmentService   AssignmentService
	NotificationService NotificationService
	DashboardService    DashboardService
}

// Dependencies - внешние зависимости, общие для сервисов
type Dependencies struct {
	Repos      *repositories.Repositories
	Tokens     *auth.TokenService
	Hasher     *auth.PasswordHasher
	Revoker    auth.RefreshRevoker
	Mailer     email.Mailer
	Templates  *email.TemplateManager
	Storage    storage.Storage
	Images     *imageprocessor.Processor
	Publisher  Publisher
	Auth       AuthOptions
	Attendance AttendanceOptions
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	repos := deps.Repos
	notificationService := NewNotificationService(repos.Notifications, deps.Publisher)

	return &ServiceContainer{
		AuthService: NewAuthService(repos.Users, deps.Tokens, deps.Hasher, deps.Revoker, deps.Mailer, deps.Templates, deps.Auth),
		UserService: NewUserService(repos.Users, deps.Hasher, deps.Tokens, deps.Revoker),
		AttendanceService: NewAttendanceService(
			repos.DailyLogs,
			repos.Assignments,
			notificationService,
			deps.Storage,
			deps.Images,
			deps.Attendance,
		),
		AssignmentService:   NewAssignmentService(repos.Assignments, repos.Users),
		NotificationService: notificationService,
		DashboardService:    NewDashboardService(repos),
	}
}
