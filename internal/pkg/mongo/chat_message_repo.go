package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatMessageRepo interface {
	SaveMessage(ctx context.Context, msg *ChatMessage) error
	GetHistory(ctx context.Context, room string, limit, offset int64) ([]*ChatMessage, error)
}

type chatMessageRepoImpl struct {
	col *mongo.Collection
}

func NewChatMessageRepo(db *mongo.Database) ChatMessageRepo {
	return &chatMessageRepoImpl{
		col: db.Collection("chat_messages"),
	}
}

// SaveMessage 插入新消息
func (s *chatMessageRepoImpl) SaveMessage(ctx context.Context, msg *ChatMessage) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// GetHistory 分页获取房间历史消息 (按时间倒序)
func (s *chatMessageRepoImpl) GetHistory(ctx context.Context, room string, limit, offset int64) ([]*ChatMessage, error) {
	filter := bson.M{"room": room}
	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*ChatMessage
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
