package router

import "github.com/gin-gonic/gin"

func (rt *Router) RegisterMediaRoutes(rg *gin.RouterGroup) {
	h := rt.handlers.Media
	mediaGroup := rg.Group("/media")
	{
		mediaGroup.POST("/uploadAvatar", h.UploadAvatar)
		mediaGroup.POST("/presign", h.Presign)
	}
}
