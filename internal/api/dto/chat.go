package dto

import "time"

// SendMessageDTO 发送聊天消息
type SendMessageDTO struct {
	Message string `json:"message" binding:"required"`
}

// ChatMessageDTO 聊天消息广播负载
type ChatMessageDTO struct {
	Sender  string    `json:"sender,omitempty"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}
