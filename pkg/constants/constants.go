package constants

import "time"

const (
	FILE_MAX_SIZE              = 5 << 20          // 头像上传最大字节数
	REDIS_TIMEOUT              = 1                // redis timeout (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 168              // Refresh Token 有效期（小时），168小时 = 7天
	PASSWORD_RESET_TTL         = 30 * time.Minute // 重置密码链接有效期
	IGNORED_RETENTION_DAYS     = 30               // 被忽略的请求默认保留天数
	PRESIGN_EXPIRY             = 5 * time.Minute  // 预签名上传链接有效期
	CONTACT_SET_TTL            = 24 * time.Hour   // 联系人 id 集合缓存有效期
)

// Redis key 前缀
const (
	USER_TOKEN_KEY      = "user_token:"        // user_token:<uid> -> refresh token id
	PASSWORD_RESET_KEY  = "password_reset:"    // password_reset:<token> -> uid
	DIRECTORY_CACHE_KEY = "directory:complete" // 已完善资料列表缓存
	CONTACT_SET_KEY     = "contact_relation:"  // contact_relation:<uid> -> 联系人 id 集合
)
