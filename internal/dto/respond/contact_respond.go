package respond

import "time"

// RelationshipRespond 当前用户对目标用户的关系状态
// RequestId 仅在 pending / ignored 时有值，用于撤回
type RelationshipRespond struct {
	State     string `json:"state"`
	RequestId string `json:"request_id,omitempty"`
}

// IncomingRequestRespond 收到的待处理请求
type IncomingRequestRespond struct {
	RequestId string         `json:"request_id"`
	Sender    ProfileSummary `json:"sender"`
	CreatedAt time.Time      `json:"created_at"`
}
