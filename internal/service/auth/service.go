// Package auth 注册、登录、令牌刷新与找回密码
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"venturedeck/internal/dao/mysql/repository"
	myredis "venturedeck/internal/dao/redis"
	"venturedeck/internal/dto/request"
	"venturedeck/internal/dto/respond"
	"venturedeck/internal/infrastructure/mail"
	"venturedeck/internal/model"
	"venturedeck/internal/session"
	"venturedeck/pkg/constants"
	"venturedeck/pkg/enum/profile/user_status_enum"
	"venturedeck/pkg/errorx"
	"venturedeck/pkg/util/jwt"
	"venturedeck/pkg/util/random"

	"go.uber.org/zap"
)

// Service 认证服务实现
type Service struct {
	repos    *repository.Repositories
	cache    myredis.CacheService
	mailer   mail.Sender
	resetURL string
}

// NewAuthService resetURL 为前端重置密码页面，token 以查询参数追加
func NewAuthService(repos *repository.Repositories, cache myredis.CacheService, mailer mail.Sender, resetURL string) *Service {
	return &Service{repos: repos, cache: cache, mailer: mailer, resetURL: resetURL}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup 邮箱注册，成功后直接登录
func (s *Service) Signup(ctx context.Context, req request.SignupRequest) (*respond.TokenRespond, error) {
	email := normalizeEmail(req.Email)
	_, err := s.repos.Profile.FindByEmail(email)
	if err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "该邮箱已注册")
	}
	if !errorx.IsNotFound(err) {
		zap.L().Error("find profile by email failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	p := &model.Profile{
		Uuid:        random.NewUuid("U"),
		Email:       email,
		RawPassword: req.Password,
		Status:      user_status_enum.NORMAL,
	}
	if err := s.repos.Profile.Create(p); err != nil {
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeUserExist, "该邮箱已注册")
		}
		zap.L().Error("create profile failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return s.issueTokens(ctx, p)
}

// Login 邮箱密码登录
func (s *Service) Login(ctx context.Context, req request.LoginRequest) (*respond.TokenRespond, error) {
	p, err := s.repos.Profile.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error("find profile by email failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !p.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}
	if p.Status == user_status_enum.DISABLE {
		return nil, errorx.New(errorx.CodeForbidden, "账号已被禁用")
	}
	return s.issueTokens(ctx, p)
}

// Refresh 用 refresh token 换新的双 token，只有最近一次登录的 token 有效
func (s *Service) Refresh(ctx context.Context, req request.RefreshTokenRequest) (*respond.TokenRespond, error) {
	claims, err := jwt.ParseTokenWithSubject(req.RefreshToken, jwt.SubjectRefreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 无效，请重新登录")
	}
	valid, err := s.ValidateTokenID(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		zap.L().Error("validate token id failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !valid {
		return nil, errorx.New(errorx.CodeUnauthorized, "登录已失效，请重新登录")
	}
	p, err := s.repos.Profile.FindByUuid(claims.UserID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "用户不存在")
		}
		zap.L().Error("find profile failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return s.issueTokens(ctx, p)
}

// ValidateTokenID 单点登录：tokenID 必须与 Redis 中记录的一致
func (s *Service) ValidateTokenID(ctx context.Context, userID, tokenID string) (bool, error) {
	stored, err := s.cache.Get(ctx, constants.USER_TOKEN_KEY+userID)
	if err != nil {
		return false, err
	}
	return stored != "" && stored == tokenID, nil
}

// Logout 删除 refresh token 记录，access token 自然过期
func (s *Service) Logout(ctx context.Context, sess session.Session) error {
	if err := s.cache.Delete(ctx, constants.USER_TOKEN_KEY+sess.UserID); err != nil {
		zap.L().Error("delete token id failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// ForgotPassword 总是返回成功，避免通过该接口探测邮箱是否注册
func (s *Service) ForgotPassword(ctx context.Context, req request.ForgotPasswordRequest) error {
	p, err := s.repos.Profile.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if !errorx.IsNotFound(err) {
			zap.L().Error("find profile by email failed", zap.Error(err))
		}
		return nil
	}

	token, err := random.GetSecureToken(32)
	if err != nil {
		zap.L().Error("generate reset token failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err := s.cache.Set(ctx, constants.PASSWORD_RESET_KEY+token, p.Uuid, constants.PASSWORD_RESET_TTL); err != nil {
		zap.L().Error("store reset token failed", zap.Error(err))
		return errorx.ErrServerBusy
	}

	link := s.resetURL + "?token=" + token
	body := fmt.Sprintf("Use the link below to reset your VentureDeck password. It expires in %d minutes.\n\n%s\n",
		int(constants.PASSWORD_RESET_TTL/time.Minute), link)
	// 发信失败同样返回成功，否则调用方能据此判断邮箱是否已注册
	if err := s.mailer.Send(ctx, p.Email, "Reset your VentureDeck password", body); err != nil {
		zap.L().Error("send reset mail failed", zap.String("user_id", p.Uuid), zap.Error(err))
	}
	return nil
}

// ResetPassword 消费一次性 token 设置新密码，并让已登录设备的 refresh token 失效
func (s *Service) ResetPassword(ctx context.Context, req request.ResetPasswordRequest) error {
	key := constants.PASSWORD_RESET_KEY + req.Token
	userId, err := s.cache.GetOrError(ctx, key)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeUnauthorized, "重置链接无效或已过期")
		}
		zap.L().Error("read reset token failed", zap.Error(err))
		return errorx.ErrServerBusy
	}
	p, err := s.repos.Profile.FindByUuid(userId)
	if err != nil {
		zap.L().Error("find profile failed", zap.String("user_id", userId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	p.RawPassword = req.Password
	if err := s.repos.Profile.Save(p); err != nil {
		zap.L().Error("save password failed", zap.String("user_id", userId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		zap.L().Warn("delete reset token failed", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, constants.USER_TOKEN_KEY+userId); err != nil {
		zap.L().Warn("revoke refresh token failed", zap.String("user_id", userId), zap.Error(err))
	}
	return nil
}

func (s *Service) issueTokens(ctx context.Context, p *model.Profile) (*respond.TokenRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(p.Uuid)
	if err != nil {
		zap.L().Error("generate access token failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(p.Uuid)
	if err != nil {
		zap.L().Error("generate refresh token failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	ttl := time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS) * time.Hour
	if err := s.cache.Set(ctx, constants.USER_TOKEN_KEY+p.Uuid, tokenID, ttl); err != nil {
		zap.L().Error("store token id failed", zap.String("user_id", p.Uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.TokenRespond{
		UserId:       p.Uuid,
		Email:        p.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
