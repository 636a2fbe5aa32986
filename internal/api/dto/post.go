package dto

import "time"

// CreatePostDTO 新建帖子，published_at 为空表示草稿
type CreatePostDTO struct {
	Title       string     `json:"title" binding:"required" validate:"min=1,max=200"`
	Body        string     `json:"body" binding:"required" validate:"min=1"`
	PublishedAt *time.Time `json:"published_at"`
}

// UpdatePostDTO 编辑帖子
type UpdatePostDTO struct {
	Title       string     `json:"title" binding:"required" validate:"min=1,max=200"`
	Body        string     `json:"body" binding:"required" validate:"min=1"`
	PublishedAt *time.Time `json:"published_at"`
}

// PostDTO 帖子详情
type PostDTO struct {
	ID            uint64     `json:"id"`
	UserID        uint64     `json:"user_id"`
	Username      string     `json:"username,omitempty"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	Slug          string     `json:"slug"`
	State         string     `json:"state"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at"`
	CommentsCount int        `json:"comments_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PostNavigationDTO 详情页的前后导航
type PostNavigationDTO struct {
	Post     *PostDTO `json:"post"`
	Previous *PostDTO `json:"previous,omitempty"`
	Next     *PostDTO `json:"next,omitempty"`
}

// ListPostDTO 分页查询
type ListPostDTO struct {
	Limit  int `form:"limit,default=20" validate:"min=1,max=100"`
	Offset int `form:"offset,default=0" validate:"min=0"`
}

// SearchPostDTO 全文搜索
type SearchPostDTO struct {
	Keyword string `form:"keyword" binding:"required" validate:"min=1,max=100"`
	From    int    `form:"from,default=0" validate:"min=0"`
	Size    int    `form:"size,default=20" validate:"min=1,max=100"`
}
