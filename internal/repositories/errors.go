package repositories

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrAssignmentExists     = errors.New("assignment already exists")
	ErrLogNotFound          = errors.New("daily log not found")
	ErrLogAlreadyReviewed   = errors.New("daily log already reviewed")
	ErrNotificationNotFound = errors.New("notification not found")
)

// isUniqueViolation определяет нарушение уникального индекса (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
