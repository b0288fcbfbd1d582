package auth

import "internship_backend/internal/models"

// Principal - аутентифицированный пользователь текущего запроса.
type Principal struct {
	UserID string
	Role   models.UserRole
}

func (p Principal) HasRole(roles ...models.UserRole) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
