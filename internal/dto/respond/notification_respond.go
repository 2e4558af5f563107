package respond

import (
	"encoding/json"
	"time"
)

type NotificationRespond struct {
	NotificationId string          `json:"notification_id"`
	Type           string          `json:"type"`
	Message        string          `json:"message"`
	Link           string          `json:"link"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	IsRead         bool            `json:"is_read"`
	CreatedAt      time.Time       `json:"created_at"`
}

type UnreadCountRespond struct {
	Count int64 `json:"count"`
}
