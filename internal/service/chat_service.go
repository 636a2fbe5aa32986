package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/redis"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type ChatService interface {
	SendMessage(ctx context.Context, senderID uint64, sender, message string) error
	GetHistory(ctx context.Context, limit, offset int64) ([]*dto.ChatMessageDTO, error)
}

type ChatServiceImpl struct {
	chatRepo mongo.ChatMessageRepo
	now      func() time.Time
}

func NewChatService(chatRepo mongo.ChatMessageRepo) ChatService {
	return &ChatServiceImpl{
		chatRepo: chatRepo,
		now:      time.Now,
	}
}

// SendMessage 空白消息静默丢弃，不落库不广播
func (s *ChatServiceImpl) SendMessage(ctx context.Context, senderID uint64, sender, message string) error {
	if strings.TrimSpace(message) == "" {
		return nil
	}

	sentAt := s.now()
	msg := &mongo.ChatMessage{
		Room:     consts.ChatRoomName,
		SenderID: senderID,
		Sender:   sender,
		Message:  message,
		SentAt:   sentAt,
	}
	if err := s.chatRepo.SaveMessage(ctx, msg); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.ChatMessageDTO{
		Sender:  sender,
		Message: message,
		SentAt:  sentAt,
	})
	if err != nil {
		return err
	}
	channel := consts.ChatChannelKey + consts.ChatRoomName
	if err := redis.Publish(ctx, channel, string(payload)); err != nil {
		log.WarnContext(ctx, "failed to broadcast chat message", "room", consts.ChatRoomName, "err", err)
	}
	return nil
}

func (s *ChatServiceImpl) GetHistory(ctx context.Context, limit, offset int64) ([]*dto.ChatMessageDTO, error) {
	messages, err := s.chatRepo.GetHistory(ctx, consts.ChatRoomName, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ChatMessageDTO, 0, len(messages))
	for _, msg := range messages {
		result = append(result, &dto.ChatMessageDTO{
			Sender:  msg.Sender,
			Message: msg.Message,
			SentAt:  msg.SentAt,
		})
	}
	return result, nil
}
