package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"venturedeck/internal/dao/mysql/mysqltest"
	myredis "venturedeck/internal/dao/redis"
	"venturedeck/internal/dto/request"
	"venturedeck/internal/session"
	"venturedeck/pkg/constants"
	"venturedeck/pkg/errorx"
	"venturedeck/pkg/util/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type failingMailer struct{}

func (failingMailer) Send(context.Context, string, string, string) error {
	return errors.New("smtp: connection refused")
}

func init() {
	jwt.Init("test-secret", 15, 168)
}

func newService(t *testing.T) (*Service, *myredis.MemoryCache, *fakeMailer) {
	cache := myredis.NewMemoryCache()
	mailer := &fakeMailer{}
	return NewAuthService(mysqltest.NewRepositories(t), cache, mailer, "http://app.local/reset-password"), cache, mailer
}

func TestSignupAndLogin(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	rsp, err := svc.Signup(ctx, request.SignupRequest{Email: " Ada@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", rsp.Email)
	assert.True(t, strings.HasPrefix(rsp.UserId, "U"))

	claims, err := jwt.ParseTokenWithSubject(rsp.AccessToken, jwt.SubjectAccessToken)
	require.NoError(t, err)
	assert.Equal(t, rsp.UserId, claims.UserID)

	_, err = svc.Signup(ctx, request.SignupRequest{Email: "ada@example.com", Password: "password123"})
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))

	_, err = svc.Login(ctx, request.LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
	assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))
	_, err = svc.Login(ctx, request.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))

	login, err := svc.Login(ctx, request.LoginRequest{Email: "ADA@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, rsp.UserId, login.UserId)
}

func TestRefreshOnlyLatestTokenIsValid(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, request.SignupRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, request.LoginRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, request.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	_, err = svc.Refresh(ctx, request.RefreshTokenRequest{RefreshToken: second.AccessToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err), "access token cannot refresh")

	refreshed, err := svc.Refresh(ctx, request.RefreshTokenRequest{RefreshToken: second.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, second.UserId, refreshed.UserId)

	require.NoError(t, svc.Logout(ctx, session.New(second.UserId)))
	_, err = svc.Refresh(ctx, request.RefreshTokenRequest{RefreshToken: refreshed.RefreshToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, cache, mailer := newService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, request.SignupRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	// 未注册邮箱同样返回成功，但不发信
	require.NoError(t, svc.ForgotPassword(ctx, request.ForgotPasswordRequest{Email: "ghost@example.com"}))
	assert.Empty(t, mailer.sent)

	require.NoError(t, svc.ForgotPassword(ctx, request.ForgotPasswordRequest{Email: "a@example.com"}))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@example.com", mailer.sent[0].to)

	idx := strings.Index(mailer.sent[0].body, "token=")
	require.Greater(t, idx, 0)
	token := strings.TrimSpace(mailer.sent[0].body[idx+len("token="):])

	stored, err := cache.Get(ctx, constants.PASSWORD_RESET_KEY+token)
	require.NoError(t, err)
	assert.Equal(t, user.UserId, stored)

	err = svc.ResetPassword(ctx, request.ResetPasswordRequest{Token: "bogus", Password: "newpassword1"})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	require.NoError(t, svc.ResetPassword(ctx, request.ResetPasswordRequest{Token: token, Password: "newpassword1"}))

	_, err = svc.Login(ctx, request.LoginRequest{Email: "a@example.com", Password: "password123"})
	assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))
	_, err = svc.Login(ctx, request.LoginRequest{Email: "a@example.com", Password: "newpassword1"})
	assert.NoError(t, err)

	// token 只能使用一次，旧设备的 refresh token 已失效
	err = svc.ResetPassword(ctx, request.ResetPasswordRequest{Token: token, Password: "another-pass"})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
	_, err = svc.Refresh(ctx, request.RefreshTokenRequest{RefreshToken: user.RefreshToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestForgotPasswordIgnoresMailFailure(t *testing.T) {
	cache := myredis.NewMemoryCache()
	svc := NewAuthService(mysqltest.NewRepositories(t), cache, failingMailer{}, "http://app.local/reset-password")
	ctx := context.Background()

	_, err := svc.Signup(ctx, request.SignupRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	// 已注册与未注册邮箱的响应必须一致
	assert.NoError(t, svc.ForgotPassword(ctx, request.ForgotPasswordRequest{Email: "a@example.com"}))
	assert.NoError(t, svc.ForgotPassword(ctx, request.ForgotPasswordRequest{Email: "ghost@example.com"}))
}
