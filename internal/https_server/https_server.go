// Package https_server 提供 HTTP/HTTPS 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件、静态资源和路由
package https_server

import (
	"venturedeck/internal/config"
	"venturedeck/internal/handler"
	"venturedeck/internal/infrastructure/logger"
	"venturedeck/internal/infrastructure/middleware"
	"venturedeck/internal/infrastructure/storage"
	"venturedeck/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init 创建 Gin 引擎并完成全部装配
// 顺序：日志与恢复 -> CORS -> 可选 TLS 重定向 -> 静态头像目录 -> 业务路由
func Init(handlers *handler.Handlers, conf *config.Config) *gin.Engine {
	// 不使用 gin.Default()，中间件完全由这里控制
	engine := gin.New()
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // 生产环境应指定前端域名
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// 由 Nginx 终止 SSL 时保持 forceTLS=false
	if conf.ForceTLS {
		engine.Use(middleware.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port, conf.Mode == "dev"))
	}

	// 未配置对象存储时头像落在本地目录
	if conf.Bucket == "" {
		engine.Static(storage.LocalAvatarRoute, conf.LocalPath)
	}

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"msg": "pong"})
	})

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
