package router

import "github.com/gin-gonic/gin"

// RegisterContactRoutes 联系人关系与请求流转
func (rt *Router) RegisterContactRoutes(rg *gin.RouterGroup) {
	h := rt.handlers.Contact
	contactGroup := rg.Group("/contact")
	{
		contactGroup.GET("/relationship", h.Relationship)
		contactGroup.POST("/sendRequest", h.SendRequest)
		contactGroup.POST("/cancelRequest", h.CancelRequest)
		contactGroup.POST("/acceptRequest", h.AcceptRequest)
		contactGroup.POST("/ignoreRequest", h.IgnoreRequest)
		contactGroup.GET("/requestList", h.RequestList)
		contactGroup.GET("/list", h.List)
		contactGroup.POST("/remove", h.Remove)
	}
}
