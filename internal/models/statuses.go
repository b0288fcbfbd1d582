package models

import "fmt"

type UserRole string
type LogStatus string
type AssignmentStatus string

const (
	UserRoleStudent     UserRole = "student"
	UserRoleCoordinator UserRole = "coordinator"
	UserRoleSupervisor  UserRole = "supervisor"
	UserRoleAdmin       UserRole = "admin"

	LogStatusPending  LogStatus = "pending"
	LogStatusApproved LogStatus = "approved"
	LogStatusRejected LogStatus = "rejected"

	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusActive    AssignmentStatus = "active"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

// UserRoles - закрытый набор ролей
var UserRoles = []UserRole{UserRoleStudent, UserRoleCoordinator, UserRoleSupervisor, UserRoleAdmin}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleStudent, UserRoleCoordinator, UserRoleSupervisor, UserRoleAdmin:
		return true
	}
	return false
}

// ParseUserRole возвращает ошибку для значений вне перечисления.
func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown user role %q", s)
	}
	return r, nil
}

func (s LogStatus) IsValid() bool {
	switch s {
	case LogStatusPending, LogStatusApproved, LogStatusRejected:
		return true
	}
	return false
}

// IsReviewDecision - итог проверки руководителем
func (s LogStatus) IsReviewDecision() bool {
	return s == LogStatusApproved || s == LogStatusRejected
}

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusPending, AssignmentStatusActive, AssignmentStatusCompleted:
		return true
	}
	return false
}
