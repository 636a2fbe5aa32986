package es

import "time"

// PostES 已发布帖子的搜索文档，发布时写入，删除时移除
type PostES struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Slug        string    `json:"slug"`
	PublishedAt time.Time `json:"published_at"`
}
