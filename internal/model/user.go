package model

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primaryKey"`
	Username     string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_username"`
	EmailAddress string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_email_address"`
	Password     string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Posts         []Post         `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Comments      []Comment      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Notifications []Notification `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
