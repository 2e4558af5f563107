package request

// PresignRequest 申请直传链接
type PresignRequest struct {
	FileName    string `json:"file_name" binding:"required,max=200"`
	ContentType string `json:"content_type" binding:"required"`
}
