package router

import "github.com/gin-gonic/gin"

func (rt *Router) RegisterPostRoutes(rg *gin.RouterGroup) {
	h := rt.handlers.Post
	postGroup := rg.Group("/post")
	{
		postGroup.POST("/create", h.Create)
		postGroup.GET("/list", h.List)
		postGroup.POST("/delete", h.Delete)
	}
}
