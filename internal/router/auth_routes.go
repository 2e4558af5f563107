package router

import (
	"venturedeck/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	h := rt.handlers.Auth
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		// 使用 Refresh Token 换取新的双 Token
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/forgotPassword", h.ForgotPassword)
		authGroup.POST("/resetPassword", h.ResetPassword)
		authGroup.POST("/logout", middleware.JWTAuth(), h.Logout)
	}
}
