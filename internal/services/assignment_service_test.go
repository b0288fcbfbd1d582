package services

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"internship_backend/internal/auth"
	"internship_backend/internal/mocks"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestAssignmentCreate(t *testing.T) {
	coordinator := auth.Principal{UserID: "coord-1", Role: models.UserRoleCoordinator}
	student := &models.User{BaseModel: models.BaseModel{ID: "stu-1"}, Role: models.UserRoleStudent, IsActive: true}
	supervisor := &models.User{BaseModel: models.BaseModel{ID: "sup-1"}, Role: models.UserRoleSupervisor, IsActive: true}

	setup := func(t *testing.T) (AssignmentService, *mocks.MockAssignmentRepository, *mocks.MockUserRepository, *gorm.DB) {
		ctrl := gomock.NewController(t)
		assignments := mocks.NewMockAssignmentRepository(ctrl)
		users := mocks.NewMockUserRepository(ctrl)
		return NewAssignmentService(assignments, users), assignments, users, &gorm.DB{}
	}

	t.Run("with supervisor is active", func(t *testing.T) {
		svc, assignments, users, db := setup(t)
		users.EXPECT().FindByID(db, "stu-1").Return(student, nil)
		users.EXPECT().FindByID(db, "sup-1").Return(supervisor, nil)
		assignments.EXPECT().Create(db, gomock.Any()).Return(nil)

		a, err := svc.Create(context.Background(), db, coordinator, &dto.CreateAssignmentRequest{
			StudentID:    "stu-1",
			SupervisorID: strPtr("sup-1"),
			CompanyName:  "Acme",
			StartDate:    strPtr("2024-02-01"),
			EndDate:      strPtr("2024-05-31"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.AssignmentStatusActive, a.Status)
		assert.Equal(t, "coord-1", *a.CoordinatorID)
		require.NotNil(t, a.StartDate)
	})

	t.Run("without supervisor is pending", func(t *testing.T) {
		svc, assignments, users, db := setup(t)
		users.EXPECT().FindByID(db, "stu-1").Return(student, nil)
		assignments.EXPECT().Create(db, gomock.Any()).Return(nil)

		a, err := svc.Create(context.Background(), db, coordinator, &dto.CreateAssignmentRequest{StudentID: "stu-1", CompanyName: "Acme"})
		require.NoError(t, err)
		assert.Equal(t, models.AssignmentStatusPending, a.Status)
	})

	t.Run("student role required", func(t *testing.T) {
		svc, _, users, db := setup(t)
		users.EXPECT().FindByID(db, "sup-1").Return(supervisor, nil)

		_, err := svc.Create(context.Background(), db, coordinator, &dto.CreateAssignmentRequest{StudentID: "sup-1", CompanyName: "Acme"})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("supervisor role required", func(t *testing.T) {
		svc, _, users, db := setup(t)
		users.EXPECT().FindByID(db, "stu-1").Return(student, nil)
		users.EXPECT().FindByID(db, "ghost").Return(nil, repositories.ErrUserNotFound)

		_, err := svc.Create(context.Background(), db, coordinator, &dto.CreateAssignmentRequest{
			StudentID: "stu-1", SupervisorID: strPtr("ghost"), CompanyName: "Acme",
		})
		assert.ErrorIs(t, err, apperrors.ErrSupervisorNotFound)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, assignments, users, db := setup(t)
		users.EXPECT().FindByID(db, "stu-1").Return(student, nil)
		assignments.EXPECT().Create(db, gomock.Any()).Return(repositories.ErrAssignmentExists)

		_, err := svc.Create(context.Background(), db, coordinator, &dto.CreateAssignmentRequest{StudentID: "stu-1", CompanyName: "Acme"})
		assert.ErrorIs(t, err, apperrors.ErrAssignmentExists)
	})

	t.Run("end before start", func(t *testing.T) {
		svc, _, _, db := setup(t)
		_, err := svc.Create(context.Background(), db, coordinator, &dto.CreateAssignmentRequest{
			StudentID: "stu-1", CompanyName: "Acme", StartDate: strPtr("2024-05-01"), EndDate: strPtr("2024-04-01"),
		})
		assert.Error(t, err)
	})
}

func TestAssignmentList_SupervisorSeesOwn(t *testing.T) {
	ctrl := gomock.NewController(t)
	assignments := mocks.NewMockAssignmentRepository(ctrl)
	svc := NewAssignmentService(assignments, mocks.NewMockUserRepository(ctrl))
	db := &gorm.DB{}

	assignments.EXPECT().FindBySupervisorID(db, "sup-1").Return(nil, nil)
	assignments.EXPECT().FindAll(db).Return([]models.InternshipAssignment{{CompanyName: "Acme"}}, nil)

	own, err := svc.List(context.Background(), db, auth.Principal{UserID: "sup-1", Role: models.UserRoleSupervisor})
	require.NoError(t, err)
	assert.NotNil(t, own)
	assert.Empty(t, own)

	all, err := svc.List(context.Background(), db, auth.Principal{UserID: "adm", Role: models.UserRoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
