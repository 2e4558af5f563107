package respond

import (
	"time"

	"venturedeck/internal/model"
)

// ProfileRespond 完整资料
type ProfileRespond struct {
	UserId           string    `json:"user_id"`
	Email            string    `json:"email,omitempty"` // 仅本人可见
	FullName         string    `json:"full_name"`
	AvatarUrl        string    `json:"avatar_url"`
	University       string    `json:"university"`
	Institution      string    `json:"institution"`
	Bio              string    `json:"bio"`
	StartupVision    string    `json:"startup_vision"`
	IndustryVertical string    `json:"industry_vertical"`
	Skills           string    `json:"skills"`
	CofounderType    string    `json:"cofounder_type"`
	LinkedinUrl      string    `json:"linkedin_url"`
	GithubUrl        string    `json:"github_url"`
	PortfolioUrl     string    `json:"portfolio_url"`
	IsComplete       bool      `json:"is_complete"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProfileSummary 列表中展示的简要资料
type ProfileSummary struct {
	UserId      string `json:"user_id"`
	FullName    string `json:"full_name"`
	AvatarUrl   string `json:"avatar_url"`
	University  string `json:"university"`
	Institution string `json:"institution"`
}

// FounderPageRespond 创始人主页
type FounderPageRespond struct {
	Profile      ProfileRespond      `json:"profile"`
	IsOwner      bool                `json:"is_owner"`
	Relationship RelationshipRespond `json:"relationship"`
}

// DirectoryItemRespond 目录条目，附带与当前用户的关系
type DirectoryItemRespond struct {
	ProfileRespond
	Relationship RelationshipRespond `json:"relationship"`
}

// NewProfileRespond withEmail 仅在本人查看时为 true
func NewProfileRespond(p *model.Profile, withEmail bool) ProfileRespond {
	rsp := ProfileRespond{
		UserId:           p.Uuid,
		FullName:         p.FullName,
		AvatarUrl:        p.AvatarUrl,
		University:       p.University,
		Institution:      p.Institution,
		Bio:              p.Bio,
		StartupVision:    p.StartupVision,
		IndustryVertical: p.IndustryVertical,
		Skills:           p.Skills,
		CofounderType:    p.CofounderType,
		LinkedinUrl:      p.LinkedinUrl,
		GithubUrl:        p.GithubUrl,
		PortfolioUrl:     p.PortfolioUrl,
		IsComplete:       p.IsComplete,
		CreatedAt:        p.CreatedAt,
	}
	if withEmail {
		rsp.Email = p.Email
	}
	return rsp
}

func NewProfileSummary(p *model.Profile) ProfileSummary {
	return ProfileSummary{
		UserId:      p.Uuid,
		FullName:    p.FullName,
		AvatarUrl:   p.AvatarUrl,
		University:  p.University,
		Institution: p.Institution,
	}
}
