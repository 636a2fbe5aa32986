package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Username     string `json:"username" binding:"required" validate:"min=3,max=30"`
	EmailAddress string `json:"email_address" binding:"required" validate:"email"`
	Password     string `json:"password" binding:"required" validate:"min=6,max=72"`
}

// CredentialDTO 登录凭证，用户名或邮箱二选一
type CredentialDTO struct {
	Username     *string `json:"username,omitempty"`
	EmailAddress *string `json:"email_address,omitempty"`
	Password     string  `json:"password" binding:"required"`
}

// UserDTO 用户对外信息
type UserDTO struct {
	ID             uint64     `json:"id"`
	Username       string     `json:"username"`
	FollowerCount  int64      `json:"follower_count"`
	FollowingCount int64      `json:"following_count"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// TokenDTO 登录返回
type TokenDTO struct {
	Token string `json:"token"`
}
