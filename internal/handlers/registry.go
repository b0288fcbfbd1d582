package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	AttendanceHandler   *AttendanceHandler
	AssignmentHandler   *AssignmentHandler
	NotificationHandler *NotificationHandler
	DashboardHandler    *DashboardHandler
	HealthHandler       *HealthHandler
	// FileHandler равен nil, если файлы хранятся не локально
	FileHandler *FileHandler
}
