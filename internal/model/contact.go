package model

import "time"

// Contact 联系人有向边，建立和删除总是成对进行
// 对应数据库 contact 表，(user_id, contact_id) 唯一；删除为物理删除
type Contact struct {
	ID        uint      `gorm:"primarykey"`
	UserId    string    `gorm:"column:user_id;uniqueIndex:idx_contact_pair;type:char(20);not null;comment:用户id"`
	ContactId string    `gorm:"column:contact_id;uniqueIndex:idx_contact_pair;index;type:char(20);not null;comment:联系人id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Contact) TableName() string {
	return "contact"
}
