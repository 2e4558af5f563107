package contact

import (
	"venturedeck/internal/dto/respond"
	"venturedeck/internal/model"
	"venturedeck/pkg/enum/contact_request/contact_request_status_enum"
	"venturedeck/pkg/enum/relation/relation_state_enum"
)

// Resolve 计算 current 视角下与 target 的关系
// connected 为 current -> target 的边是否存在，req 为 current 发给 target 的可见请求（可为 nil）
// 自己与自己永远是 none
func Resolve(currentId, targetId string, connected bool, req *model.ContactRequest) respond.RelationshipRespond {
	none := respond.RelationshipRespond{State: relation_state_enum.NONE}
	if currentId == "" || currentId == targetId {
		return none
	}
	if connected {
		return respond.RelationshipRespond{State: relation_state_enum.CONNECTED}
	}
	if req == nil || req.SenderId != currentId || req.ReceiverId != targetId {
		return none
	}
	switch req.Status {
	case contact_request_status_enum.PENDING:
		return respond.RelationshipRespond{State: relation_state_enum.PENDING, RequestId: req.Uuid}
	case contact_request_status_enum.IGNORED:
		return respond.RelationshipRespond{State: relation_state_enum.IGNORED, RequestId: req.Uuid}
	}
	return none
}
