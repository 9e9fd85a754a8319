package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"cantinho-algarvio/internal/domain"
)

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	customerInfo, err := json.Marshal(order.CustomerInfo)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, items, customer_info, subtotal, delivery_fee, total,
			status, payment_status, payment_method, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		order.ID, items, customerInfo, order.Subtotal, order.DeliveryFee, order.Total,
		order.Status, order.PaymentStatus, order.PaymentMethod, order.Location,
	).Scan(&order.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

const orderColumns = `id, items, customer_info, subtotal, delivery_fee, total,
		status, payment_status, COALESCE(payment_method, ''), COALESCE(location, ''), created_at`

func scanOrder(scanner interface{ Scan(...interface{}) error }) (domain.Order, error) {
	var o domain.Order
	var items, customerInfo []byte
	err := scanner.Scan(&o.ID, &items, &customerInfo, &o.Subtotal, &o.DeliveryFee,
		&o.Total, &o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.Location, &o.CreatedAt)
	if err != nil {
		return o, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		o.Items = nil
	}
	o.CustomerInfo = domain.NormalizeCustomerInfo(customerInfo)
	return o, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrders returns orders newest first, optionally filtered by status.
func (r *PostgresRepository) ListOrders(ctx context.Context, status string, limit, offset int) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// GetOrderStatus reads the current status for transition validation.
func (r *PostgresRepository) GetOrderStatus(ctx context.Context, id string) (string, error) {
	var status string
	err := r.DB.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = $1", id).Scan(&status)
	return status, err
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id, status string) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE orders SET payment_status = $1 WHERE id = $2", paymentStatus, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *PostgresRepository) InsertNotification(ctx context.Context, n *domain.Notification) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO notifications (id, title, message, type, read, order_id)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING created_at`,
		n.ID, n.Title, n.Message, n.Type, n.OrderID,
	).Scan(&n.CreatedAt)
}

// ListNotifications returns notifications newest first, unread before read.
func (r *PostgresRepository) ListNotifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, message, type, read, COALESCE(order_id, ''), created_at
		FROM notifications
		ORDER BY read ASC, created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Read, &n.OrderID, &n.CreatedAt); err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *PostgresRepository) MarkNotificationRead(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE notifications SET read = TRUE WHERE id = $1", id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE notifications SET read = TRUE WHERE read = FALSE")
	return err
}
