package repositories

// Repositories - набор всех репозиториев приложения.
type Repositories struct {
	Users         UserRepository
	Assignments   AssignmentRepository
	DailyLogs     DailyLogRepository
	Notifications NotificationRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Users:         NewUserRepository(),
		Assignments:   NewAssignmentRepository(),
		DailyLogs:     NewDailyLogRepository(),
		Notifications: NewNotificationRepository(),
	}
}
