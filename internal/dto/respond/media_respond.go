package respond

import "time"

type AvatarRespond struct {
	AvatarUrl string `json:"avatar_url"`
}

// PresignRespond 浏览器使用 PUT 直传到 UploadUrl，成功后以 PublicUrl 更新资料
type PresignRespond struct {
	UploadUrl string    `json:"upload_url"`
	Key       string    `json:"key"`
	PublicUrl string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}
