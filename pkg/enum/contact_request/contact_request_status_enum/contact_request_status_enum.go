package contact_request_status_enum

// 联系人请求状态，accepted/ignored 为终态
const (
	PENDING  = "pending"
	ACCEPTED = "accepted"
	IGNORED  = "ignored"
)
