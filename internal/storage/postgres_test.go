package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"cantinho-algarvio/internal/catalog"
	"cantinho-algarvio/internal/domain"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestFetchPage(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM dishes`).
		WithArgs("", "grelhados", false, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "price", "image_url", "category",
		"featured", "popular", "promotion", "avg_rating", "review_count", "created_at",
	}).
		AddRow("d1", "Cachupa", "", int64(4500), "", "grelhados", false, false, nil, 0.0, 0, time.Now()).
		AddRow("d2", "Bifana", "", int64(2500), "", "grelhados", true, false, nil, 4.5, 7, time.Now())
	mock.ExpectQuery(`(?s)SELECT id, name, .* FROM dishes WHERE`).
		WithArgs("", "grelhados", false, false, 12, 0).
		WillReturnRows(rows)

	q := catalog.Query{Category: "grelhados", PageSize: 12}
	dishes, total, err := repo.FetchPage(context.Background(), q)
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, dishes, 2)
	assert.Equal(t, "Cachupa", dishes[0].Name)
	assert.Equal(t, int64(2500), dishes[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderCommitsTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	order := &domain.Order{
		ID:            "o1",
		Items:         []domain.CartItem{{ID: "d1", Name: "Bifana", Price: 2500, Quantity: 1}},
		CustomerInfo:  domain.CustomerInfo{Name: "Maria", Address: "Rua 12", Phone: "923111222"},
		Subtotal:      2500,
		DeliveryFee:   1500,
		Total:         4000,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
	}

	createdAt := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))
	mock.ExpectCommit()

	assert.NoError(t, repo.CreateOrder(context.Background(), order))
	assert.Equal(t, createdAt, order.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), &domain.Order{ID: "o1"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderNormalizesCustomerInfo(t *testing.T) {
	repo, mock := newMockRepo(t)

	// customer_info stored as a JSON-encoded string of an object, the legacy
	// shape some rows still carry.
	legacy := `"{\"name\":\"Maria\",\"address\":\"Rua 12\",\"phone\":\"923111222\"}"`
	rows := sqlmock.NewRows([]string{
		"id", "items", "customer_info", "subtotal", "delivery_fee", "total",
		"status", "payment_status", "payment_method", "location", "created_at",
	}).AddRow("o1", `[{"id":"d1","name":"Bifana","price":2500,"quantity":1}]`, legacy,
		int64(2500), int64(1500), int64(4000), "pending", "pending", "Dinheiro", "Talatona", time.Now())

	mock.ExpectQuery(`(?s)SELECT id, items, customer_info, .* FROM orders WHERE id = \$1`).
		WithArgs("o1").
		WillReturnRows(rows)

	order, err := repo.GetOrder(context.Background(), "o1")
	assert.NoError(t, err)
	assert.Equal(t, "Maria", order.CustomerInfo.Name)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, int64(4000), order.Total)
}

func TestUpdateOrderStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1 WHERE id = $2")).
		WithArgs("confirmed", "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateOrderStatus(context.Background(), "o1", "confirmed"))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1 WHERE id = $2")).
		WithArgs("confirmed", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateOrderStatus(context.Background(), "missing", "confirmed"), sql.ErrNoRows)
}

func TestValidateDishInOrder(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("o1", "d1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	valid, err := repo.ValidateDishInOrder(context.Background(), "d1", "o1")
	assert.NoError(t, err)
	assert.True(t, valid)
}

func TestListDeliveryZonesEmptyIsNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`(?s)SELECT id, name, fee, .* FROM\s+delivery_zones`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "fee", "estimated_time"}))

	_, err := repo.ListDeliveryZones(context.Background())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListPaymentMethodsDecodesDetails(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "name", "icon", "details"}).
		AddRow("transfer", "Transferência Bancária", "bank", `{"iban":"AO06 0000"}`).
		AddRow("legacy", "Multicaixa Express", "phone", `"{\"number\":\"923000111\"}"`)
	mock.ExpectQuery(`(?s)SELECT id, name, .* FROM\s+payment_methods`).
		WillReturnRows(rows)

	methods, err := repo.ListPaymentMethods(context.Background())
	assert.NoError(t, err)
	assert.Len(t, methods, 2)
	assert.Equal(t, "AO06 0000", methods[0].Details["iban"])
	assert.Equal(t, "923000111", methods[1].Details["number"])
}

func TestMarkNotificationRead(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET read = TRUE WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkNotificationRead(context.Background(), "missing"), sql.ErrNoRows)
}
