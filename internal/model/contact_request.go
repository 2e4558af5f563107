package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// ContactRequest 联系人请求，由发送方创建，接收方处理
// 对应数据库 contact_request 表
type ContactRequest struct {
	gorm.Model
	Uuid       string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:请求id"`
	SenderId   string `gorm:"column:sender_id;index:idx_request_pair;type:char(20);not null;comment:发送方"`
	ReceiverId string `gorm:"column:receiver_id;index:idx_request_pair;index;type:char(20);not null;comment:接收方"`
	Status     string `gorm:"column:status;type:varchar(16);not null;comment:pending/accepted/ignored"`

	// ActiveKey 待处理期间为 "sender:receiver"，状态流转后置空
	// 唯一索引保证同一对用户同时只有一条待处理请求，NULL 不参与唯一性比较
	ActiveKey *string `gorm:"column:active_key;uniqueIndex;type:varchar(48);comment:待处理唯一键"`

	// IgnoredAt 被忽略的时间，保留期从此开始计算
	IgnoredAt sql.NullTime `gorm:"column:ignored_at;index;type:datetime;comment:忽略时间"`
}

func (ContactRequest) TableName() string {
	return "contact_request"
}

// PendingKey 生成待处理请求的唯一键
func PendingKey(senderId, receiverId string) *string {
	key := senderId + ":" + receiverId
	return &key
}
