package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cantinho-algarvio/internal/catalog"
	"cantinho-algarvio/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dishes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price BIGINT NOT NULL,
			image_url TEXT,
			category TEXT,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			popular BOOLEAN NOT NULL DEFAULT FALSE,
			promotion JSONB,
			avg_rating NUMERIC,
			review_count INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			items JSONB NOT NULL,
			customer_info JSONB NOT NULL,
			subtotal BIGINT NOT NULL,
			delivery_fee BIGINT NOT NULL,
			total BIGINT NOT NULL,
			status TEXT NOT NULL,
			payment_status TEXT NOT NULL,
			payment_method TEXT,
			location TEXT,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			type TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			order_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id SERIAL PRIMARY KEY,
			dish_id TEXT NOT NULL,
			order_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS delivery_zones (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			fee BIGINT NOT NULL,
			estimated_time TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS payment_methods (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT,
			details JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS company_settings (
			id INTEGER PRIMARY KEY DEFAULT 1,
			name TEXT,
			phone TEXT,
			email TEXT,
			address TEXT,
			opening_hours TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const dishColumns = `id, name, COALESCE(description, ''), price, COALESCE(image_url, ''),
		COALESCE(category, ''), featured, popular, promotion,
		COALESCE(avg_rating, 0), COALESCE(review_count, 0), created_at`

func scanDish(scanner interface{ Scan(...interface{}) error }) (domain.Dish, error) {
	var d domain.Dish
	var promotion []byte
	err := scanner.Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.ImageURL,
		&d.Category, &d.Featured, &d.Popular, &promotion,
		&d.AvgRating, &d.ReviewCount, &d.CreatedAt)
	if err != nil {
		return d, err
	}
	if len(promotion) > 0 {
		var p domain.Promotion
		if err := json.Unmarshal(promotion, &p); err == nil {
			d.Promotion = &p
		}
	}
	return d, nil
}

const dishFilter = `($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		AND ($2 = '' OR category = $2)
		AND (NOT $3::boolean OR featured)
		AND (NOT $4::boolean OR popular)`

// FetchPage returns one page of the catalog matching the query plus the
// total match count, newest dishes first.
func (r *PostgresRepository) FetchPage(ctx context.Context, q catalog.Query) ([]domain.Dish, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM dishes WHERE `+dishFilter,
		q.Search, q.Category, q.Featured, q.Popular,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+dishColumns+` FROM dishes WHERE `+dishFilter+`
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6`,
		q.Search, q.Category, q.Featured, q.Popular, q.PageSize, q.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			continue
		}
		dishes = append(dishes, d)
	}
	return dishes, total, nil
}

func (r *PostgresRepository) GetDish(ctx context.Context, id string) (*domain.Dish, error) {
	d, err := scanDish(r.DB.QueryRowContext(ctx,
		`SELECT `+dishColumns+` FROM dishes WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) CreateDish(ctx context.Context, dish *domain.Dish) error {
	var promotion []byte
	if dish.Promotion != nil {
		promotion, _ = json.Marshal(dish.Promotion)
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO dishes (id, name, description, price, image_url, category, featured, popular, promotion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		dish.ID, dish.Name, dish.Description, dish.Price, dish.ImageURL,
		dish.Category, dish.Featured, dish.Popular, promotion,
	).Scan(&dish.CreatedAt)
}

func (r *PostgresRepository) UpdateDish(ctx context.Context, dish *domain.Dish) error {
	var promotion []byte
	if dish.Promotion != nil {
		promotion, _ = json.Marshal(dish.Promotion)
	}
	result, err := r.DB.ExecContext(ctx, `
		UPDATE dishes
		SET name=$1, description=$2, price=$3, image_url=$4, category=$5, featured=$6, popular=$7, promotion=$8
		WHERE id=$9`,
		dish.Name, dish.Description, dish.Price, dish.ImageURL,
		dish.Category, dish.Featured, dish.Popular, promotion, dish.ID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) DeleteDish(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM dishes WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT category FROM dishes
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			continue
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *PostgresRepository) ListDeliveryZones(ctx context.Context) ([]domain.DeliveryLocation, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, fee, COALESCE(estimated_time, '')
		FROM delivery_zones
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []domain.DeliveryLocation
	for rows.Next() {
		var z domain.DeliveryLocation
		if err := rows.Scan(&z.ID, &z.Name, &z.Fee, &z.EstimatedTime); err != nil {
			continue
		}
		zones = append(zones, z)
	}
	if len(zones) == 0 {
		return nil, sql.ErrNoRows
	}
	return zones, nil
}

func (r *PostgresRepository) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(icon, ''), details
		FROM payment_methods
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		var m domain.PaymentMethod
		var details []byte
		if err := rows.Scan(&m.ID, &m.Name, &m.Icon, &details); err != nil {
			continue
		}
		if len(details) > 0 {
			// Account details were historically stored either as an object
			// or as a JSON-encoded string of one.
			if err := json.Unmarshal(details, &m.Details); err != nil {
				var inner string
				if json.Unmarshal(details, &inner) == nil {
					_ = json.Unmarshal([]byte(inner), &m.Details)
				}
			}
		}
		methods = append(methods, m)
	}
	if len(methods) == 0 {
		return nil, sql.ErrNoRows
	}
	return methods, nil
}

func (r *PostgresRepository) GetCompanySettings(ctx context.Context) (*domain.CompanySettings, error) {
	var s domain.CompanySettings
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(name, ''), COALESCE(phone, ''), COALESCE(email, ''),
			COALESCE(address, ''), COALESCE(opening_hours, '')
		FROM company_settings WHERE id = 1`).
		Scan(&s.Name, &s.Phone, &s.Email, &s.Address, &s.OpeningHours)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
