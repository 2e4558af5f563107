// Package profile 个人资料、创始人主页与目录
package profile

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"venturedeck/internal/dao/mysql/repository"
	myredis "venturedeck/internal/dao/redis"
	"venturedeck/internal/dto/request"
	"venturedeck/internal/dto/respond"
	"venturedeck/internal/model"
	"venturedeck/internal/session"
	"venturedeck/pkg/constants"
	"venturedeck/pkg/enum/profile/cofounder_type_enum"
	"venturedeck/pkg/errorx"

	"go.uber.org/zap"
)

// RelationshipResolver 由联系人服务实现
type RelationshipResolver interface {
	Relationship(ctx context.Context, sess session.Session, targetId string) (*respond.RelationshipRespond, error)
	Relationships(ctx context.Context, sess session.Session, targetIds []string) (map[string]respond.RelationshipRespond, error)
}

// Service 资料业务实现
type Service struct {
	repos     *repository.Repositories
	cache     myredis.AsyncCacheService
	relations RelationshipResolver
}

func NewProfileService(repos *repository.Repositories, cache myredis.AsyncCacheService, relations RelationshipResolver) *Service {
	return &Service{repos: repos, cache: cache, relations: relations}
}

// Me 本人资料，包含邮箱
func (s *Service) Me(_ context.Context, sess session.Session) (*respond.ProfileRespond, error) {
	p, err := s.load(sess.UserID)
	if err != nil {
		return nil, err
	}
	rsp := respond.NewProfileRespond(p, true)
	return &rsp, nil
}

// Update 覆盖可编辑字段，完整度在保存时重新计算
func (s *Service) Update(_ context.Context, sess session.Session, req request.UpdateProfileRequest) (*respond.ProfileRespond, error) {
	if !cofounder_type_enum.IsValid(req.CofounderType) {
		return nil, errorx.New(errorx.CodeInvalidParam, "合伙人类型不合法")
	}
	p, err := s.load(sess.UserID)
	if err != nil {
		return nil, err
	}

	p.FullName = strings.TrimSpace(req.FullName)
	p.AvatarUrl = strings.TrimSpace(req.AvatarUrl)
	p.University = strings.TrimSpace(req.University)
	p.Institution = strings.TrimSpace(req.Institution)
	p.Bio = strings.TrimSpace(req.Bio)
	p.StartupVision = strings.TrimSpace(req.StartupVision)
	p.IndustryVertical = strings.TrimSpace(req.IndustryVertical)
	p.Skills = strings.TrimSpace(req.Skills)
	p.CofounderType = req.CofounderType
	p.LinkedinUrl = strings.TrimSpace(req.LinkedinUrl)
	p.GithubUrl = strings.TrimSpace(req.GithubUrl)
	p.PortfolioUrl = strings.TrimSpace(req.PortfolioUrl)

	if err := s.repos.Profile.Save(p); err != nil {
		zap.L().Error("save profile failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	s.invalidateDirectory()

	rsp := respond.NewProfileRespond(p, true)
	return &rsp, nil
}

// SetAvatar 上传完成后更新头像地址
func (s *Service) SetAvatar(_ context.Context, sess session.Session, url string) error {
	p, err := s.load(sess.UserID)
	if err != nil {
		return err
	}
	p.AvatarUrl = url
	if err := s.repos.Profile.Save(p); err != nil {
		zap.L().Error("save avatar failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return errorx.ErrServerBusy
	}
	s.invalidateDirectory()
	return nil
}

// Get 创始人主页，未完善的资料只有本人能看
func (s *Service) Get(ctx context.Context, sess session.Session, userId string) (*respond.FounderPageRespond, error) {
	p, err := s.load(userId)
	if err != nil {
		return nil, err
	}
	owner := sess.Is(userId)
	if !owner && !p.IsComplete {
		return nil, errorx.New(errorx.CodeNotFound, "资料不存在")
	}
	rel, err := s.relations.Relationship(ctx, sess, userId)
	if err != nil {
		return nil, err
	}
	return &respond.FounderPageRespond{
		Profile:      respond.NewProfileRespond(p, owner),
		IsOwner:      owner,
		Relationship: *rel,
	}, nil
}

// Directory 完整资料列表，排除自己，可按合伙人类型和关键字过滤
func (s *Service) Directory(ctx context.Context, sess session.Session, req request.DirectoryRequest) ([]respond.DirectoryItemRespond, error) {
	all, err := s.completeProfiles(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	matched := make([]respond.ProfileRespond, 0, len(all))
	ids := make([]string, 0, len(all))
	for _, p := range all {
		if p.UserId == sess.UserID {
			continue
		}
		if req.CofounderType != "" && p.CofounderType != req.CofounderType {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		matched = append(matched, p)
		ids = append(ids, p.UserId)
	}

	rels, err := s.relations.Relationships(ctx, sess, ids)
	if err != nil {
		return nil, err
	}
	rsp := make([]respond.DirectoryItemRespond, 0, len(matched))
	for _, p := range matched {
		rsp = append(rsp, respond.DirectoryItemRespond{ProfileRespond: p, Relationship: rels[p.UserId]})
	}
	return rsp, nil
}

func matches(p respond.ProfileRespond, query string) bool {
	for _, f := range []string{p.FullName, p.Bio, p.Skills, p.IndustryVertical, p.StartupVision, p.University} {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// completeProfiles 读缓存，未命中时查库并回写
func (s *Service) completeProfiles(ctx context.Context) ([]respond.ProfileRespond, error) {
	cached, err := s.cache.Get(ctx, constants.DIRECTORY_CACHE_KEY)
	if err != nil {
		zap.L().Warn("read directory cache failed", zap.Error(err))
	}
	if cached != "" {
		var list []respond.ProfileRespond
		if err := json.Unmarshal([]byte(cached), &list); err == nil {
			return list, nil
		}
		zap.L().Warn("directory cache corrupted, reloading")
	}

	profiles, err := s.repos.Profile.FindComplete()
	if err != nil {
		zap.L().Error("find complete profiles failed", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	list := make([]respond.ProfileRespond, 0, len(profiles))
	for i := range profiles {
		list = append(list, respond.NewProfileRespond(&profiles[i], false))
	}
	if data, err := json.Marshal(list); err == nil {
		if err := s.cache.Set(ctx, constants.DIRECTORY_CACHE_KEY, string(data), time.Minute*constants.REDIS_TIMEOUT); err != nil {
			zap.L().Warn("write directory cache failed", zap.Error(err))
		}
	}
	return list, nil
}

func (s *Service) invalidateDirectory() {
	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), constants.DIRECTORY_CACHE_KEY); err != nil {
			zap.L().Warn("invalidate directory cache failed", zap.Error(err))
		}
	})
}

func (s *Service) load(userId string) (*model.Profile, error) {
	p, err := s.repos.Profile.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "资料不存在")
		}
		zap.L().Error("find profile failed", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return p, nil
}
