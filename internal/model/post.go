package model

import (
	"time"
)

// PostState 帖子生命周期状态，由 published + published_at 推导，不落库
type PostState int8

const (
	StateDraft PostState = iota
	StateScheduled
	StateReadyToPublish
	StatePublished
)

func (s PostState) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateReadyToPublish:
		return "ready_to_publish"
	case StatePublished:
		return "published"
	default:
		return "draft"
	}
}

type Post struct {
	ID            uint64     `gorm:"primaryKey"`
	UserID        uint64     `gorm:"not null;index:idx_posts_user_id" json:"user_id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Body          string     `gorm:"type:text;not null" json:"body"`
	Slug          string     `gorm:"type:varchar(255);uniqueIndex:idx_slug" json:"slug"`
	Published     bool       `gorm:"type:tinyint(1);not null;default:0;index:idx_published,priority:1" json:"published"`
	PublishedAt   *time.Time `gorm:"index:idx_published,priority:2;index:idx_published_at" json:"published_at"`
	CommentsCount int        `gorm:"not null;default:0" json:"comments_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// 关联关系
	User     User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Comments []Comment `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}

// State 四种状态互斥且完备：draft / scheduled / ready_to_publish / published
func (p *Post) State(now time.Time) PostState {
	if p.Published {
		return StatePublished
	}
	if p.PublishedAt == nil {
		return StateDraft
	}
	if p.PublishedAt.After(now) {
		return StateScheduled
	}
	return StateReadyToPublish
}

func (p *Post) IsDraft() bool {
	return !p.Published && p.PublishedAt == nil
}

func (p *Post) IsScheduled(now time.Time) bool {
	return p.State(now) == StateScheduled
}

func (p *Post) IsReadyToPublish(now time.Time) bool {
	return p.State(now) == StateReadyToPublish
}

// ViewableBy 已发布对所有人可见，未发布仅作者可见
func (p *Post) ViewableBy(viewerID uint64) bool {
	return p.Published || (viewerID != 0 && p.UserID == viewerID)
}

// ShouldSchedule 写入提交后是否需要投递发布任务
func (p *Post) ShouldSchedule() bool {
	return p.PublishedAt != nil && !p.Published
}

// ScheduleEpoch 入队时捕获的计划时间，截断到整秒，执行期据此检测改期
func (p *Post) ScheduleEpoch() int64 {
	if p.PublishedAt == nil {
		return 0
	}
	return p.PublishedAt.Unix()
}
