package dto

import "time"

// CreateCommentDTO 发表评论
type CreateCommentDTO struct {
	Body string `json:"body" binding:"required" validate:"min=1,max=10000"`
}

// UpdateCommentDTO 编辑评论
type UpdateCommentDTO struct {
	Body string `json:"body" binding:"required" validate:"min=1,max=10000"`
}

// CommentDTO 评论
type CommentDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
