package notification_type_enum

const (
	CONTACT_REQUEST  = "contact_request"  // 收到联系人请求
	CONTACT_ACCEPTED = "contact_accepted" // 请求被接受
)
