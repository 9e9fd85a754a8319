package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"cantinho-algarvio/internal/domain"
)

type RatingStore interface {
	UpdateDishRating(ctx context.Context, dishID string) error
}

// RatingConsumer keeps each dish's rating aggregates and popularity flag in
// step with incoming reviews.
type RatingConsumer struct {
	Reader *kafka.Reader
	Store  RatingStore
}

func NewRatingConsumer(reader *kafka.Reader, store RatingStore) *RatingConsumer {
	return &RatingConsumer{Reader: reader, Store: store}
}

func (c *RatingConsumer) Start(ctx context.Context) {
	log.Println("Starting rating aggregates consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading review event: %v", err)
			continue
		}

		var event domain.ReviewEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling review event: %v", err)
			continue
		}

		if event.Type == domain.EventNewReview {
			c.ProcessReview(ctx, event)
		}
	}
}

func (c *RatingConsumer) ProcessReview(ctx context.Context, event domain.ReviewEvent) {
	if event.Type != domain.EventNewReview || event.DishID == "" {
		return
	}

	if err := c.Store.UpdateDishRating(ctx, event.DishID); err != nil {
		log.Printf("Error updating rating for dish %s: %v", event.DishID, err)
		return
	}

	log.Printf("Updated rating aggregates for dish %s", event.DishID)
}
