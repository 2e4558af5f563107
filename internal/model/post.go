package model

import "gorm.io/gorm"

// Post 创始人主页上的动态
type Post struct {
	gorm.Model
	Uuid    string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:动态id"`
	UserId  string `gorm:"column:user_id;index;type:char(20);not null;comment:作者"`
	Content string `gorm:"column:content;type:TEXT;not null"`
}

func (Post) TableName() string {
	return "post"
}
