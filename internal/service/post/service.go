// Package post 创始人主页动态
package post

import (
	"context"
	"strings"

	"venturedeck/internal/dao/mysql/repository"
	"venturedeck/internal/dto/respond"
	"venturedeck/internal/model"
	"venturedeck/internal/session"
	"venturedeck/pkg/errorx"
	"venturedeck/pkg/util/random"

	"go.uber.org/zap"
)

type Service struct {
	repos *repository.Repositories
}

func NewPostService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// Create 只能发布到自己的主页
func (s *Service) Create(_ context.Context, sess session.Session, content string) (*respond.PostRespond, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "内容不能为空")
	}
	p := &model.Post{Uuid: random.NewUuid("P"), UserId: sess.UserID, Content: content}
	if err := s.repos.Post.Create(p); err != nil {
		zap.L().Error("create post failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := toRespond(p)
	return &rsp, nil
}

func (s *Service) List(_ context.Context, _ session.Session, userId string) ([]respond.PostRespond, error) {
	posts, err := s.repos.Post.FindByUser(userId)
	if err != nil {
		zap.L().Error("find posts failed", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := make([]respond.PostRespond, 0, len(posts))
	for i := range posts {
		rsp = append(rsp, toRespond(&posts[i]))
	}
	return rsp, nil
}

// Delete 只能删除自己的动态
func (s *Service) Delete(_ context.Context, sess session.Session, postId string) error {
	p, err := s.repos.Post.FindByUuid(postId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "动态不存在")
		}
		zap.L().Error("find post failed", zap.String("post_id", postId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if !sess.Is(p.UserId) {
		return errorx.ErrForbidden
	}
	if err := s.repos.Post.Delete(postId); err != nil {
		zap.L().Error("delete post failed", zap.String("post_id", postId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

func toRespond(p *model.Post) respond.PostRespond {
	return respond.PostRespond{PostId: p.Uuid, UserId: p.UserId, Content: p.Content, CreatedAt: p.CreatedAt}
}
