package model

import "time"

type Follow struct {
	ID         uint64    `gorm:"primaryKey"`
	FollowerID uint64    `gorm:"not null;uniqueIndex:idx_follower_followed,priority:1;index:idx_follower_id" json:"follower_id"`
	FollowedID uint64    `gorm:"not null;uniqueIndex:idx_follower_followed,priority:2;index:idx_followed_id" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
