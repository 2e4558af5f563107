// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"venturedeck/internal/handler"
	"venturedeck/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 持有 Handler 聚合，按模块注册路由
type Router struct {
	handlers *handler.Handlers
}

func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由，在 https_server.Init() 中调用
// /auth 下除 logout 外均为公开接口，其余分组统一挂 JWT 鉴权
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuth())
	rt.RegisterProfileRoutes(authed)
	rt.RegisterContactRoutes(authed)
	rt.RegisterConversationRoutes(authed)
	rt.RegisterNotificationRoutes(authed)
	rt.RegisterPostRoutes(authed)
	rt.RegisterMediaRoutes(authed)
	rt.RegisterWebSocketRoutes(authed)
}
