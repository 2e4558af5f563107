package router

import "github.com/gin-gonic/gin"

// RegisterProfileRoutes 资料、主页与目录
func (rt *Router) RegisterProfileRoutes(rg *gin.RouterGroup) {
	h := rt.handlers.Profile
	profileGroup := rg.Group("/profile")
	{
		profileGroup.GET("/me", h.Me)
		profileGroup.POST("/update", h.Update)
		profileGroup.GET("/get", h.Get)
	}
	rg.GET("/directory/list", h.Directory)
}
