package request

type CreatePostRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type PostListRequest struct {
	UserId string `form:"user_id" binding:"required"`
}

type DeletePostRequest struct {
	PostId string `json:"post_id" binding:"required"`
}
