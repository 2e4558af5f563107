package request

// UpdateProfileRequest 更新本人资料，整体覆盖可编辑字段
type UpdateProfileRequest struct {
	FullName         string `json:"full_name" binding:"max=100"`
	AvatarUrl        string `json:"avatar_url" binding:"omitempty,max=512"`
	University       string `json:"university" binding:"max=200"`
	Institution      string `json:"institution" binding:"max=200"`
	Bio              string `json:"bio" binding:"max=2000"`
	StartupVision    string `json:"startup_vision" binding:"max=2000"`
	IndustryVertical string `json:"industry_vertical" binding:"max=100"`
	Skills           string `json:"skills" binding:"max=1000"`
	CofounderType    string `json:"cofounder_type" binding:"omitempty,oneof=Technical Non-technical Hybrid"`
	LinkedinUrl      string `json:"linkedin_url" binding:"omitempty,url,max=512"`
	GithubUrl        string `json:"github_url" binding:"omitempty,url,max=512"`
	PortfolioUrl     string `json:"portfolio_url" binding:"omitempty,url,max=512"`
}

// GetProfileRequest 查看创始人主页
type GetProfileRequest struct {
	UserId string `form:"user_id" binding:"required"`
}

// DirectoryRequest 目录搜索
type DirectoryRequest struct {
	Query         string `form:"query" binding:"max=100"`
	CofounderType string `form:"cofounder_type" binding:"omitempty,oneof=Technical Non-technical Hybrid"`
}
