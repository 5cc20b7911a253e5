package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/auth/domain"
	authrepo "github.com/rahvarz/bazar/internal/auth/repository"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/config"
	"github.com/rahvarz/bazar/internal/migration"
	"github.com/rahvarz/bazar/internal/principal"
	"github.com/rahvarz/bazar/pkg/db"
	"github.com/rahvarz/bazar/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type captureMail struct {
	to      []string
	subject string
	body    string
}

func (m *captureMail) Send(_ context.Context, to []string, subject, body string) error {
	m.to = to
	m.subject = subject
	m.body = body
	return nil
}

func setup(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock, *captureMail) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	mail := &captureMail{}

	svc := New(Params{
		Cfg: config.Config{
			EmailSuffix: "@gmail.com",
			SessionTTL:  7 * 24 * time.Hour,
			CodeTTL:     60 * time.Second,
		},
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  authrepo.Provide(conn),
		Mail:  mail,
	})
	return svc, conn, clk, mail
}

func register(t *testing.T, svc domain.Service, email string) *domain.UserResponse {
	t.Helper()
	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Someone",
		Email:    email,
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterRejectsForeignEmailDomain(t *testing.T) {
	svc, _, _, _ := setup(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Someone",
		Email:    "someone@example.com",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)

	var ve *validation.Errors
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("email"))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _, _ := setup(t)

	register(t, svc, "dup@gmail.com")
	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Other",
		Email:    "dup@gmail.com",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := setup(t)

	register(t, svc, "login@gmail.com")
	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "login@gmail.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@gmail.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateRoundTripAndExpiry(t *testing.T) {
	svc, _, clk, _ := setup(t)
	ctx := context.Background()

	user := register(t, svc, "session@gmail.com")
	login, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "session@gmail.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	actor, err := svc.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "session@gmail.com", actor.Email)
	assert.Equal(t, user.ID, snowflake.ID(actor.UserID).String())

	clk.Advance(7*24*time.Hour + time.Minute)
	_, err = svc.Authenticate(ctx, login.Token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _, _ := setup(t)
	ctx := context.Background()

	register(t, svc, "revoke@gmail.com")
	login, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "revoke@gmail.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.Token))
	_, err = svc.Authenticate(ctx, login.Token)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, conn, _, _ := setup(t)
	ctx := context.Background()

	register(t, svc, "reset@gmail.com")
	require.NoError(t, svc.RequestPasswordReset(ctx, "reset@gmail.com"))

	var code domain.OneTimeCode
	require.NoError(t, conn.Where("purpose = ?", domain.CodePurposePasswordReset).First(&code).Error)

	// Wrong code is rejected.
	err := svc.ResetPassword(ctx, domain.ResetPasswordRequest{
		Email:       "reset@gmail.com",
		Code:        "000000x",
		NewPassword: "newpassword1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	require.NoError(t, svc.ResetPassword(ctx, domain.ResetPasswordRequest{
		Email:       "reset@gmail.com",
		Code:        code.Code,
		NewPassword: "newpassword1",
	}))

	// Codes are single-use.
	err = svc.ResetPassword(ctx, domain.ResetPasswordRequest{
		Email:       "reset@gmail.com",
		Code:        code.Code,
		NewPassword: "anotherpassword",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "reset@gmail.com", Password: "newpassword1"})
	require.NoError(t, err)
}

func TestPasswordResetDoesNotLeakUnknownAccounts(t *testing.T) {
	svc, conn, _, mail := setup(t)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "ghost@gmail.com"))
	assert.Empty(t, mail.to)

	var count int64
	require.NoError(t, conn.Model(&domain.OneTimeCode{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCodeExpiresAfterTTL(t *testing.T) {
	svc, conn, clk, _ := setup(t)
	ctx := context.Background()

	register(t, svc, "ttl@gmail.com")
	require.NoError(t, svc.RequestPasswordReset(ctx, "ttl@gmail.com"))

	var code domain.OneTimeCode
	require.NoError(t, conn.First(&code).Error)

	clk.Advance(61 * time.Second)
	err := svc.ResetPassword(ctx, domain.ResetPasswordRequest{
		Email:       "ttl@gmail.com",
		Code:        code.Code,
		NewPassword: "newpassword1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	purged, err := svc.PurgeExpiredCodes(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
}

func TestVerifyEmailStampsUser(t *testing.T) {
	svc, conn, _, mail := setup(t)
	ctx := context.Background()

	user := register(t, svc, "verify@gmail.com")
	id, err := snowflake.ParseString(user.ID)
	require.NoError(t, err)
	actor := principal.Principal{UserID: id.Int64(), Email: user.Email}

	require.NoError(t, svc.RequestEmailVerification(ctx, actor))
	assert.Equal(t, []string{"verify@gmail.com"}, mail.to)

	var code domain.OneTimeCode
	require.NoError(t, conn.Where("purpose = ?", domain.CodePurposeVerifyEmail).First(&code).Error)
	require.NoError(t, svc.VerifyEmail(ctx, actor, code.Code))

	var stored domain.User
	require.NoError(t, conn.First(&stored, "id = ?", id.Int64()).Error)
	assert.NotNil(t, stored.EmailVerifiedAt)
}
