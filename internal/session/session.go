// Package session 定义已认证调用方的身份
// 鉴权中间件构造 Session 放入请求上下文，Handler 取出后显式传给每个 Service 调用
package session

import "strings"

// ContextKey gin.Context 中保存 Session 的键
const ContextKey = "session"

// Session 一次请求的调用方身份
type Session struct {
	UserID string `json:"user_id"`
}

// New 由已验证的 token 声明构造会话
func New(userID string) Session {
	return Session{UserID: strings.TrimSpace(userID)}
}

// Valid 未登录或 token 中缺少用户 ID 时为 false
func (s Session) Valid() bool {
	return s.UserID != ""
}

// Is 判断调用方是否为指定用户
func (s Session) Is(userID string) bool {
	return s.Valid() && s.UserID == userID
}
