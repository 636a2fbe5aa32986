package kafka

import (
	"Inkstone/internal/api/config"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Event 对外广播的领域事件，供下游系统（推送、统计）消费
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// EventProducer 领域事件生产者端口
type EventProducer interface {
	PublishEvent(ctx context.Context, event Event) error
	Close() error
}

type eventProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventProducer(cfg *config.Config) (EventProducer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, errors.Wrap(err, "create sync producer")
	}

	log.Info("Kafka producer initialized", "topic", cfg.Kafka.EventsTopic)

	return &eventProducerImpl{
		producer: producer,
		topic:    cfg.Kafka.EventsTopic,
	}, nil
}

// PublishEvent 同步发送一条领域事件
// 事件按实体 ID 分区保序，发送失败只应记录日志，不得阻断业务写入
func (s *eventProducerImpl) PublishEvent(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	var key sarama.Encoder
	if id, ok := event.Data["id"]; ok {
		if v, ok := id.(uint64); ok {
			key = sarama.StringEncoder(strconv.FormatUint(v, 10))
		}
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   key,
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrap(err, "send event")
	}

	log.InfoContext(ctx, "domain event published",
		"type", event.Type, "partition", partition, "offset", offset)
	return nil
}

func (s *eventProducerImpl) Close() error {
	return s.producer.Close()
}
