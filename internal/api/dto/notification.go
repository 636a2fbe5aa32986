package dto

import "time"

// NotificationDTO 通知
type NotificationDTO struct {
	ID             uint64    `json:"id"`
	NotifiableType string    `json:"notifiable_type"`
	NotifiableID   uint64    `json:"notifiable_id"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// UnreadCountDTO 未读角标
type UnreadCountDTO struct {
	Count int64 `json:"count"`
}
