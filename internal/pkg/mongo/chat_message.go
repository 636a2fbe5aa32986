package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage 聊天室消息明细
type ChatMessage struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Room     string             `bson:"room" json:"room"`
	SenderID uint64             `bson:"sender_id" json:"sender_id"`
	Sender   string             `bson:"sender" json:"sender"`
	Message  string             `bson:"message" json:"message"`
	SentAt   time.Time          `bson:"sent_at" json:"sent_at"`
}
