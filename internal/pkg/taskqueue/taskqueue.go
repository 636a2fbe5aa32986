package taskqueue

import (
	"context"
	"time"
)

// Task 延迟任务载荷
// ScheduledAt 为入队时捕获的计划发布时间（整秒 epoch），执行端据此识别过期排期
type Task struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	PostID      uint64 `json:"post_id"`
	ScheduledAt int64  `json:"scheduled_at,omitempty"`
	Attempts    int    `json:"attempts,omitempty"`
}

// Queue 任务队列端口：立即投递 或 定点延迟投递，至少一次交付
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	EnqueueAt(ctx context.Context, task Task, runAt time.Time) error
}

// Handler 按 Kind 注册的任务执行函数
// 业务性不满足（帖子没了、排期变了）一律静默返回 nil，error 只表示基础设施故障需要重试
type Handler func(ctx context.Context, task Task) error
