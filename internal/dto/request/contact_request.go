package request

// RelationshipRequest 查询与目标用户的关系
type RelationshipRequest struct {
	TargetId string `form:"target_id" binding:"required"`
}

// SendContactRequest 向目标用户发送联系人请求
type SendContactRequest struct {
	TargetId string `json:"target_id" binding:"required"`
}

// HandleContactRequest 撤回 / 接受 / 忽略请求
type HandleContactRequest struct {
	RequestId string `json:"request_id" binding:"required"`
}

// RemoveContactRequest 删除联系人
type RemoveContactRequest struct {
	ContactId string `json:"contact_id" binding:"required"`
}
