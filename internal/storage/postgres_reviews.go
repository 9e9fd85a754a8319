package storage

import (
	"context"

	"cantinho-algarvio/internal/domain"
)

// ValidateDishInOrder checks that the completed order actually contains the
// dish being reviewed. Order items are stored as a JSONB array snapshot.
func (r *PostgresRepository) ValidateDishInOrder(ctx context.Context, dishID, orderID string) (bool, error) {
	var valid bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE id = $1
			  AND status = 'completed'
			  AND items @> jsonb_build_array(jsonb_build_object('id', $2::text))
		)`, orderID, dishID).Scan(&valid)
	return valid, err
}

func (r *PostgresRepository) GetExistingReviewID(ctx context.Context, dishID, orderID string) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM reviews WHERE dish_id = $1 AND order_id = $2",
		dishID, orderID).Scan(&id)
	return id, err
}

func (r *PostgresRepository) InsertReview(ctx context.Context, review *domain.Review) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO reviews (dish_id, order_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		review.DishID, review.OrderID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *PostgresRepository) UpdateReview(ctx context.Context, id int, review *domain.Review) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3",
		review.Rating, review.Comment, id)
	return err
}

func (r *PostgresRepository) ListDishReviews(ctx context.Context, dishID string) ([]domain.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, dish_id, order_id, rating, COALESCE(comment, ''), created_at
		FROM reviews
		WHERE dish_id = $1
		ORDER BY created_at DESC`, dishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ID, &review.DishID, &review.OrderID,
			&review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// UpdateDishRating refreshes the denormalized rating aggregates and flips the
// popular flag once a dish collects enough well-rated reviews.
func (r *PostgresRepository) UpdateDishRating(ctx context.Context, dishID string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE dishes
		SET avg_rating = (
			SELECT ROUND(AVG(rating::numeric), 2)
			FROM reviews
			WHERE dish_id = $1
		),
		review_count = (
			SELECT COUNT(*)
			FROM reviews
			WHERE dish_id = $1
		)
		WHERE id = $1`, dishID)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
		UPDATE dishes
		SET popular = (COALESCE(avg_rating, 0) >= 4 AND COALESCE(review_count, 0) >= 3)
		WHERE id = $1`, dishID)
	return err
}
