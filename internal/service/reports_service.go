package service

import (
	"context"
	"database/sql"
	"time"

	"cantinho-algarvio/internal/domain"
	"cantinho-algarvio/internal/storage"
)

type DailyRevenue struct {
	Day     string `json:"day"`
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

type ReportSummary struct {
	From            string         `json:"from"`
	To              string         `json:"to"`
	Orders          int            `json:"orders"`
	Revenue         int64          `json:"revenue"`
	AverageOrder    int64          `json:"average_order"`
	PendingPayments int            `json:"pending_payments"`
	ByStatus        map[string]int `json:"by_status"`
	Daily           []DailyRevenue `json:"daily"`
}

type DishSales struct {
	DishID   string  `json:"dish_id"`
	DishName string  `json:"dish_name"`
	Sold     float64 `json:"sold"`
}

// ReportsService computes the read-only admin aggregations over the orders
// collection. Cancelled orders are excluded from revenue figures.
type ReportsService struct {
	db  *sql.DB
	rdb *storage.RedisStore
}

func NewReportsService(db *sql.DB, rdb *storage.RedisStore) *ReportsService {
	return &ReportsService{db: db, rdb: rdb}
}

func (s *ReportsService) Summary(ctx context.Context, from, to time.Time) (*ReportSummary, error) {
	summary := &ReportSummary{
		From:     from.Format("2006-01-02"),
		To:       to.Format("2006-01-02"),
		ByStatus: make(map[string]int),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		var revenue int64
		if err := rows.Scan(&status, &count, &revenue); err != nil {
			continue
		}
		summary.ByStatus[status] = count
		summary.Orders += count
		if status != domain.StatusCancelled {
			summary.Revenue += revenue
		}
	}

	if billable := summary.Orders - summary.ByStatus[domain.StatusCancelled]; billable > 0 {
		summary.AverageOrder = summary.Revenue / int64(billable)
	}

	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE created_at >= $1 AND created_at < $2
		  AND payment_status = 'pending' AND status <> 'cancelled'`, from, to).
		Scan(&summary.PendingPayments); err != nil {
		return nil, err
	}

	daily, err := s.dailyRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary.Daily = daily

	return summary, nil
}

func (s *ReportsService) dailyRevenue(ctx context.Context, from, to time.Time) ([]DailyRevenue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT created_at::date AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND status <> 'cancelled'
		GROUP BY day
		ORDER BY day`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var daily []DailyRevenue
	for rows.Next() {
		var d DailyRevenue
		var day time.Time
		if err := rows.Scan(&day, &d.Orders, &d.Revenue); err != nil {
			continue
		}
		d.Day = day.Format("2006-01-02")
		daily = append(daily, d)
	}
	return daily, nil
}

// TopDishes reads the Redis sales leaderboard and resolves dish names from
// the database. When the leaderboard is empty or unavailable it falls back
// to counting order item snapshots directly.
func (s *ReportsService) TopDishes(ctx context.Context, limit int) ([]DishSales, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.rdb != nil {
		scores, order, err := s.rdb.TopDishes(ctx, limit)
		if err == nil && len(order) > 0 {
			var top []DishSales
			for _, dishID := range order {
				var name string
				if err := s.db.QueryRowContext(ctx,
					"SELECT name FROM dishes WHERE id = $1", dishID).Scan(&name); err != nil {
					continue
				}
				top = append(top, DishSales{DishID: dishID, DishName: name, Sold: scores[dishID]})
			}
			if len(top) > 0 {
				return top, nil
			}
		}
	}

	return s.topDishesFromDB(ctx, limit)
}

func (s *ReportsService) topDishesFromDB(ctx context.Context, limit int) ([]DishSales, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item->>'id', item->>'name', SUM((item->>'quantity')::int) AS sold
		FROM orders, jsonb_array_elements(items) AS item
		WHERE status <> 'cancelled'
		GROUP BY item->>'id', item->>'name'
		ORDER BY sold DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []DishSales
	for rows.Next() {
		var d DishSales
		if err := rows.Scan(&d.DishID, &d.DishName, &d.Sold); err != nil {
			continue
		}
		top = append(top, d)
	}
	return top, nil
}
