package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"internship_backend/internal/auth"
	"internship_backend/internal/email"
	"internship_backend/internal/mocks"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/services/dto"
	"internship_backend/pkg/apperrors"
)

type authFixture struct {
	svc     *AuthServiceImpl
	users   *mocks.MockUserRepository
	revoker *mocks.MockRefreshRevoker
	mailer  *mocks.MockMailer
	tokens  *auth.TokenService
	hasher  *auth.PasswordHasher
	db      *gorm.DB
}

func testTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		ResetTTL:      time.Hour,
		Issuer:        "test",
	})
	require.NoError(t, err)
	return tokens
}

func newAuthFixture(t *testing.T, opts AuthOptions) *authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &authFixture{
		users:   mocks.NewMockUserRepository(ctrl),
		revoker: mocks.NewMockRefreshRevoker(ctrl),
		mailer:  mocks.NewMockMailer(ctrl),
		tokens:  testTokens(t),
		hasher:  auth.NewPasswordHasher(bcrypt.MinCost),
		db:      &gorm.DB{},
	}
	templates, err := email.NewDefaultTemplateManager("")
	require.NoError(t, err)

	if opts.FrontendURL == "" {
		opts.FrontendURL = "http://localhost:3000"
	}
	f.svc = NewAuthService(f.users, f.tokens, f.hasher, f.revoker, f.mailer, templates, opts).(*AuthServiceImpl)
	return f
}

func (f *authFixture) user(t *testing.T, password string, active bool) *models.User {
	t.Helper()
	hash, err := f.hasher.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		BaseModel:    models.BaseModel{ID: "7d5a4a70-3f7e-4c1e-9c52-5d0c3f2b8a11"},
		IDNumber:     "S100",
		Email:        "a@x.com",
		PasswordHash: hash,
		Name:         "Alice",
		Role:         models.UserRoleStudent,
		IsActive:     active,
	}
}

func requireAppError(t *testing.T, err error, want *apperrors.AppError) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, want.Code, appErr.Code)
	assert.Equal(t, want.HTTPCode, appErr.HTTPCode)
	assert.Equal(t, want.Message, appErr.Message)
}

func TestRegister_OK(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})

	f.users.EXPECT().FindByEmailOrIDNumber(f.db, "a@x.com", "S100").Return(nil, repositories.ErrUserNotFound)
	f.users.EXPECT().Create(f.db, gomock.Any()).DoAndReturn(func(_ *gorm.DB, u *models.User) error {
		assert.Equal(t, "a@x.com", u.Email)
		assert.NotEqual(t, "secret1", u.PasswordHash)
		assert.True(t, f.hasher.CheckPasswordHash("secret1", u.PasswordHash))
		assert.True(t, u.IsActive)
		u.ID = "new-id"
		return nil
	})

	resp, err := f.svc.Register(context.Background(), f.db, &dto.RegisterRequest{
		IDNumber: "S100",
		Email:    " A@X.com ",
		Password: "secret1",
		Name:     "Alice",
		Role:     "student",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", resp.ID)
	assert.Equal(t, models.UserRoleStudent, resp.Role)
}

func TestRegister_Conflict(t *testing.T) {
	req := &dto.RegisterRequest{IDNumber: "S100", Email: "a@x.com", Password: "secret1", Name: "A", Role: "student"}

	t.Run("pre-check", func(t *testing.T) {
		f := newAuthFixture(t, AuthOptions{})
		f.users.EXPECT().FindByEmailOrIDNumber(f.db, "a@x.com", "S100").Return(&models.User{}, nil)

		_, err := f.svc.Register(context.Background(), f.db, req)
		requireAppError(t, err, apperrors.ErrUserAlreadyExists)
	})

	t.Run("unique index race", func(t *testing.T) {
		f := newAuthFixture(t, AuthOptions{})
		f.users.EXPECT().FindByEmailOrIDNumber(f.db, "a@x.com", "S100").Return(nil, repositories.ErrUserNotFound)
		f.users.EXPECT().Create(f.db, gomock.Any()).Return(repositories.ErrUserAlreadyExists)

		_, err := f.svc.Register(context.Background(), f.db, req)
		requireAppError(t, err, apperrors.ErrUserAlreadyExists)
		assert.Equal(t, http.StatusConflict, apperrors.Resolve(err).HTTPCode)
	})
}

func TestRegister_PasswordOverBcryptLimitIsValidationError(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	f.users.EXPECT().FindByEmailOrIDNumber(f.db, "b@x.com", "S101").Return(nil, repositories.ErrUserNotFound)

	_, err := f.svc.Register(context.Background(), f.db, &dto.RegisterRequest{
		IDNumber: "S101",
		Email:    "b@x.com",
		Password: strings.Repeat("пароль", 7),
		Name:     "B",
		Role:     "student",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.Resolve(err).HTTPCode)
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.Resolve(err).Code)
}

func TestLogin_OK(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	u := f.user(t, "secret1", true)

	f.users.EXPECT().FindByEmail(f.db, "a@x.com").Return(u, nil)
	f.users.EXPECT().UpdateLastLogin(f.db, u.ID, gomock.Any()).Return(nil)

	resp, err := f.svc.Login(context.Background(), f.db, &dto.LoginRequest{Email: "A@x.com", Password: "secret1"})
	require.NoError(t, err)

	access, err := f.tokens.VerifyAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, access.UserID)
	assert.Equal(t, models.UserRoleStudent, access.Role)

	refresh, err := f.tokens.VerifyRefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, refresh.UserID)
	assert.NotNil(t, resp.User.LastLogin)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	u := f.user(t, "secret1", true)
	inactive := f.user(t, "secret1", false)

	f.users.EXPECT().FindByEmail(f.db, "nobody@x.com").Return(nil, repositories.ErrUserNotFound)
	f.users.EXPECT().FindByEmail(f.db, "a@x.com").Return(u, nil)
	f.users.EXPECT().FindByEmail(f.db, "off@x.com").Return(inactive, nil)

	_, errUnknown := f.svc.Login(context.Background(), f.db, &dto.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	_, errWrong := f.svc.Login(context.Background(), f.db, &dto.LoginRequest{Email: "a@x.com", Password: "wrong-pass"})
	_, errInactive := f.svc.Login(context.Background(), f.db, &dto.LoginRequest{Email: "off@x.com", Password: "secret1"})

	for _, err := range []error{errUnknown, errWrong, errInactive} {
		requireAppError(t, err, apperrors.ErrInvalidCredentials)
	}
	assert.Equal(t, errUnknown, errWrong)
	assert.Equal(t, errWrong, errInactive)
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		f := newAuthFixture(t, AuthOptions{})
		_, err := f.svc.RefreshToken(ctx, f.db, "")
		requireAppError(t, err, apperrors.ErrRefreshTokenRequired)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		f := newAuthFixture(t, AuthOptions{})
		access, err := f.tokens.IssueAccessToken("u1", models.UserRoleStudent)
		require.NoError(t, err)

		_, err = f.svc.RefreshToken(ctx, f.db, access)
		requireAppError(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("revoked", func(t *testing.T) {
		f := newAuthFixture(t, AuthOptions{})
		token, err := f.tokens.IssueRefreshToken("u1")
		require.NoError(t, err)
		f.revoker.EXPECT().IsRevoked(ctx, gomock.Any(), "u1", gomock.Any()).Return(true, nil)

		_, err = f.svc.RefreshToken(ctx, f.db, token)
		requireAppError(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("inactive user", func(t *testing.T) {
		f := newAuthFixture(t, AuthOptions{})
		u := f.user(t, "secret1", false)
		token, err := f.tokens.IssueRefreshToken(u.ID)
		require.NoError(t, err)
		f.revoker.EXPECT().IsRevoked(ctx, gomock.Any(), u.ID, gomock.Any()).Return(false, nil)
		f.users.EXPECT().FindByID(f.db, u.ID).Return(u, nil)

		_, err = f.svc.RefreshToken(ctx, f.db, token)
		requireAppError(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("ok", func(t *testing.T) {
		f := newAuthFixture(t, AuthOptions{})
		u := f.user(t, "secret1", true)
		token, err := f.tokens.IssueRefreshToken(u.ID)
		require.NoError(t, err)
		rc, err := f.tokens.VerifyRefreshToken(token)
		require.NoError(t, err)
		// отзыв сравнивается с временем выпуска в миллисекундах, а не с iat
		f.revoker.EXPECT().IsRevoked(ctx, rc.ID, u.ID, rc.IssuedAtPrecise()).Return(false, nil)
		f.users.EXPECT().FindByID(f.db, u.ID).Return(u, nil)

		resp, err := f.svc.RefreshToken(ctx, f.db, token)
		require.NoError(t, err)
		claims, err := f.tokens.VerifyAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, models.UserRoleStudent, claims.Role)
	})
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	f.users.EXPECT().FindByEmail(f.db, "nobody@x.com").Return(nil, repositories.ErrUserNotFound)

	resp, err := f.svc.ForgotPassword(context.Background(), f.db, "nobody@x.com")
	require.NoError(t, err)
	assert.Equal(t, MsgResetEmailSent, resp.Message)
	assert.Empty(t, resp.ResetToken)
}

func TestForgotPassword_SendsLink(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{FrontendURL: "https://app.example.com/"})
	u := f.user(t, "secret1", true)
	f.users.EXPECT().FindByEmail(f.db, "a@x.com").Return(u, nil)

	var sent email.Message
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg email.Message) error {
		sent = msg
		return nil
	})

	resp, err := f.svc.ForgotPassword(context.Background(), f.db, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, MsgResetEmailSent, resp.Message)
	assert.Empty(t, resp.ResetToken)

	assert.Equal(t, "a@x.com", sent.To)
	assert.Contains(t, sent.Text, "https://app.example.com/reset-password?token=")
}

func TestForgotPassword_DiagnosticModeExposesToken(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{Development: true, ExposeResetToken: true})
	u := f.user(t, "secret1", true)
	f.users.EXPECT().FindByEmail(f.db, "a@x.com").Return(u, nil)
	// письмо в режиме диагностики не отправляется
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

	resp, err := f.svc.ForgotPassword(context.Background(), f.db, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, resp.ResetToken)

	claims, err := f.tokens.VerifyResetToken(resp.ResetToken, u.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestForgotPassword_MailFailure(t *testing.T) {
	t.Run("swallowed in production", func(t *testing.T) {
		f := newAuthFixture(t, AuthOptions{})
		f.users.EXPECT().FindByEmail(f.db, "a@x.com").Return(f.user(t, "secret1", true), nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		resp, err := f.svc.ForgotPassword(context.Background(), f.db, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, MsgResetEmailSent, resp.Message)
	})

	t.Run("surfaced in development", func(t *testing.T) {
		f := newAuthFixture(t, AuthOptions{Development: true})
		f.users.EXPECT().FindByEmail(f.db, "a@x.com").Return(f.user(t, "secret1", true), nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		_, err := f.svc.ForgotPassword(context.Background(), f.db, "a@x.com")
		requireAppError(t, err, apperrors.ErrMailDelivery)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, AuthOptions{})
	u := f.user(t, "secret1", true)

	token, err := f.tokens.IssueResetToken(u.ID, u.PasswordHash)
	require.NoError(t, err)

	var newHash string
	f.users.EXPECT().FindByID(f.db, u.ID).Return(u, nil)
	f.users.EXPECT().UpdatePasswordHash(f.db, u.ID, gomock.Any()).DoAndReturn(func(_ *gorm.DB, _ string, hash string) error {
		newHash = hash
		return nil
	})
	f.revoker.EXPECT().RevokeUser(ctx, u.ID, f.tokens.RefreshTTL()).Return(nil)

	require.NoError(t, f.svc.ResetPassword(ctx, f.db, &dto.ResetPasswordRequest{Token: token, Password: "brand-new"}))
	assert.True(t, f.hasher.CheckPasswordHash("brand-new", newHash))

	// тот же токен после смены хеша недействителен
	changed := *u
	changed.PasswordHash = newHash
	f.users.EXPECT().FindByID(f.db, u.ID).Return(&changed, nil)

	err = f.svc.ResetPassword(ctx, f.db, &dto.ResetPasswordRequest{Token: token, Password: "again-new"})
	requireAppError(t, err, apperrors.ErrInvalidResetToken)
}

func TestLogout_RevokesJTI(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t, AuthOptions{})

	token, err := f.tokens.IssueRefreshToken("u1")
	require.NoError(t, err)
	claims, err := f.tokens.VerifyRefreshToken(token)
	require.NoError(t, err)

	f.revoker.EXPECT().RevokeToken(ctx, claims.ID, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
		assert.InDelta(t, f.tokens.RefreshTTL().Seconds(), ttl.Seconds(), 5)
		return nil
	})

	require.NoError(t, f.svc.Logout(ctx, token))

	err = f.svc.Logout(ctx, "garbage")
	requireAppError(t, err, apperrors.ErrInvalidRefreshToken)
}
