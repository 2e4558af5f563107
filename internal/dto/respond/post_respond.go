package respond

import "time"

type PostRespond struct {
	PostId    string    `json:"post_id"`
	UserId    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
