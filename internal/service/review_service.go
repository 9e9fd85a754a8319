package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cantinho-algarvio/internal/domain"
)

var (
	ErrDishNotInOrder  = errors.New("dish was not part of this order")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrDuplicateReview = errors.New("review already submitted for this dish and order")
)

type ReviewService struct {
	repository ReviewRepository
	cache      ReviewCache
	publisher  ReviewPublisher
}

func NewReviewService(repository ReviewRepository, cache ReviewCache, publisher ReviewPublisher) *ReviewService {
	return &ReviewService{
		repository: repository,
		cache:      cache,
		publisher:  publisher,
	}
}

func (s *ReviewService) CreateOrUpdate(ctx context.Context, review *domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}

	valid, err := s.repository.ValidateDishInOrder(ctx, review.DishID, review.OrderID)
	if err != nil {
		return fmt.Errorf("failed to validate order: %w", err)
	}
	if !valid {
		return ErrDishNotInOrder
	}

	cacheKey := s.cache.EventMarkerKey("review:" + review.DishID + ":" + review.OrderID)
	if exists, _ := s.cache.Exists(ctx, cacheKey); exists {
		return ErrDuplicateReview
	}

	existingID, err := s.repository.GetExistingReviewID(ctx, review.DishID, review.OrderID)
	isUpdate := err == nil && existingID > 0
	if isUpdate {
		if err := s.repository.UpdateReview(ctx, existingID, review); err != nil {
			return err
		}
		review.ID = existingID
	} else if err := s.repository.InsertReview(ctx, review); err != nil {
		return err
	}

	_ = s.cache.SetMarker(ctx, cacheKey)

	if s.publisher != nil {
		_ = s.publisher.PublishReviewEvent(ctx, domain.ReviewEvent{
			Type:      domain.EventNewReview,
			DishID:    review.DishID,
			OrderID:   review.OrderID,
			Rating:    review.Rating,
			Timestamp: time.Now(),
		})
	}

	return nil
}

func (s *ReviewService) ListDishReviews(ctx context.Context, dishID string) ([]domain.Review, error) {
	return s.repository.ListDishReviews(ctx, dishID)
}
