package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ для *gorm.DB, привязанного к запросу
	DBContextKey = contextKey("db")
	// PrincipalKey - ключ для auth.Principal аутентифицированного пользователя
	PrincipalKey = contextKey("principal")
)
