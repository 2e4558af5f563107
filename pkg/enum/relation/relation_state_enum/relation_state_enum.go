package relation_state_enum

// 当前用户视角下与目标用户的关系
const (
	NONE      = "none"
	PENDING   = "pending"
	IGNORED   = "ignored"
	CONNECTED = "connected"
)
