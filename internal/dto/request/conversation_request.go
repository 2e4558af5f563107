package request

// OpenConversationRequest 打开与某人的会话，不存在时创建
type OpenConversationRequest struct {
	PeerId string `json:"peer_id" binding:"required"`
}

// ConversationIdRequest 按会话 id 操作，query 和 body 均可
type ConversationIdRequest struct {
	ConversationId string `form:"conversation_id" json:"conversation_id" binding:"required"`
}

// SendMessageRequest 发送消息
type SendMessageRequest struct {
	ConversationId string `json:"conversation_id" binding:"required"`
	Content        string `json:"content" binding:"required,max=4000"`
}
