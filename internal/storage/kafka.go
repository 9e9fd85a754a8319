package storage

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"cantinho-algarvio/internal/domain"
)

// KafkaPublisher pushes order and review change events onto the feeds the
// admin listener and the aggregates consumer subscribe to.
type KafkaPublisher struct {
	Orders  *kafka.Writer
	Reviews *kafka.Writer
}

func NewKafkaPublisher(orders, reviews *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Orders: orders, Reviews: reviews}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Orders.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
	})
}

func (p *KafkaPublisher) PublishReviewEvent(ctx context.Context, event domain.ReviewEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Reviews.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.DishID),
		Value: payload,
	})
}
