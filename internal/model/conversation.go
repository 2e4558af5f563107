package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Conversation 两个用户之间唯一的私聊会话
// Participant1 < Participant2，联合唯一索引保证每对用户只有一个会话
type Conversation struct {
	gorm.Model
	Uuid         string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:会话uuid"`
	Participant1 string `gorm:"column:participant_1;uniqueIndex:idx_conversation_pair;type:char(20);not null;comment:较小的用户id"`
	Participant2 string `gorm:"column:participant_2;uniqueIndex:idx_conversation_pair;index;type:char(20);not null;comment:较大的用户id"`

	// LastMessage 最新消息摘要，用于收件箱列表
	LastMessage   string       `gorm:"column:last_message;type:TEXT;comment:最新的消息"`
	LastMessageAt sql.NullTime `gorm:"column:last_message_at;index;type:datetime;comment:最近消息时间"`
}

func (Conversation) TableName() string {
	return "conversation"
}

// HasParticipant 判断用户是否属于该会话
func (c *Conversation) HasParticipant(userId string) bool {
	return userId != "" && (c.Participant1 == userId || c.Participant2 == userId)
}

// Peer 返回会话中的另一方
func (c *Conversation) Peer(userId string) string {
	if c.Participant1 == userId {
		return c.Participant2
	}
	return c.Participant1
}
