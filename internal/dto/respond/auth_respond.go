package respond

// TokenRespond 注册 / 登录 / 刷新返回的令牌
type TokenRespond struct {
	UserId       string `json:"user_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
