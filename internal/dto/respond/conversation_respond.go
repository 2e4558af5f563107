package respond

import "time"

// ConversationRespond 收件箱中的一个会话
type ConversationRespond struct {
	ConversationId string         `json:"conversation_id"`
	Peer           ProfileSummary `json:"peer"`
	LastMessage    string         `json:"last_message"`
	LastMessageAt  *time.Time     `json:"last_message_at"`
	UnreadCount    int64          `json:"unread_count"`
	CreatedAt      time.Time      `json:"created_at"`
}

// MessageRespond 单条消息，雪花 id 以字符串返回避免前端精度丢失
type MessageRespond struct {
	MessageId      string    `json:"message_id"`
	ConversationId string    `json:"conversation_id"`
	SenderId       string    `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// MarkReadRespond 本次标记为已读的条数
type MarkReadRespond struct {
	ConversationId string `json:"conversation_id"`
	ReaderId       string `json:"reader_id"`
	Count          int64  `json:"count"`
}
