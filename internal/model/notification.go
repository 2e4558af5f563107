package model

import "gorm.io/gorm"

// Notification 用户通知，由其他用户的操作产生
type Notification struct {
	gorm.Model
	Uuid    string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:通知id"`
	UserId  string `gorm:"column:user_id;index;type:char(20);not null;comment:接收人"`
	Type    string `gorm:"column:type;type:varchar(32);not null;comment:contact_request/contact_accepted"`
	Message string `gorm:"column:message;type:varchar(512);not null"`
	Link    string `gorm:"column:link;type:varchar(255)"`

	// Metadata JSON 字符串，如 {"sender_id":"U..","request_id":"R.."}
	Metadata string `gorm:"column:metadata;type:TEXT"`
	IsRead   bool   `gorm:"column:is_read;index;not null;default:false"`
}

func (Notification) TableName() string {
	return "notification"
}
