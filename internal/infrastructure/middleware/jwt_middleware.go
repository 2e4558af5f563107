package middleware

import (
	"errors"
	"net/http"
	"strings"

	"venturedeck/internal/session"
	"venturedeck/pkg/errorx"
	"venturedeck/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// JWTAuth JWT 认证中间件
// 验证 Access Token 并把 Session 存入上下文
// 浏览器 WebSocket 无法设置 Header，此时允许通过 ?token= 传递
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, msg := extractToken(c)
		if token == "" {
			abortUnauthorized(c, msg)
			return
		}

		claims, err := jwt.ParseTokenWithSubject(token, jwt.SubjectAccessToken)
		if errors.Is(err, jwt.ErrWrongTokenType) {
			abortUnauthorized(c, "请使用 Access Token 访问此接口")
			return
		}
		if err != nil {
			abortUnauthorized(c, "Token 已过期或无效，请重新登录")
			return
		}

		sess := session.New(claims.UserID)
		if !sess.Valid() {
			abortUnauthorized(c, "Token 缺少用户信息")
			return
		}
		c.Set(session.ContextKey, sess)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if q := c.Query("token"); q != "" {
			return q, ""
		}
		return "", "请先登录"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "Token 格式错误，请使用 Bearer Token"
	}
	return parts[1], ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": errorx.CodeUnauthorized,
		"msg":  msg,
	})
}
