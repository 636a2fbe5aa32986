package model

import "time"

// 通知可挂载的目标类型
const (
	NotifiablePost   = "post"
	NotifiableFollow = "follow"
)

// Notification 站内通知，多态指向触发实体
// (user_id, notifiable_type, notifiable_id) 唯一，任务重投不会产生重复通知
type Notification struct {
	ID             uint64    `gorm:"primaryKey"`
	UserID         uint64    `gorm:"not null;uniqueIndex:idx_user_notifiable,priority:1;index:idx_user_read,priority:1" json:"user_id"`
	NotifiableType string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_notifiable,priority:2" json:"notifiable_type"`
	NotifiableID   uint64    `gorm:"not null;uniqueIndex:idx_user_notifiable,priority:3" json:"notifiable_id"`
	Read           bool      `gorm:"type:tinyint(1);not null;default:0;index:idx_user_read,priority:2" json:"read"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
