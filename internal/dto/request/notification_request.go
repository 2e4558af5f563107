package request

// NotificationListRequest limit 为 0 时返回全部
type NotificationListRequest struct {
	Limit int `form:"limit" binding:"min=0,max=200"`
}
