package dto

import (
	"time"

	"vidtube/internal/model"
)

type CommentResponse struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	VideoID   uint64    `json:"videoId"`
	Owner     OwnerInfo `json:"owner"`
}

// CommentListResponse 分页评论列表的包装
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

func ToCommentResponse(comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		VideoID:   comment.VideoID,
	}
	if comment.Owner.ID != 0 {
		resp.Owner = ToOwnerInfo(&comment.Owner)
	}
	return resp
}

func ToCommentResponses(comments []model.Comment) []CommentResponse {
	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, ToCommentResponse(&comments[i]))
	}
	return response
}
