package service

import (
	"context"

	"cantinho-algarvio/internal/domain"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, status string, limit, offset int) ([]domain.Order, error)
	GetOrderStatus(ctx context.Context, id string) (string, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error
	SaveQRCode(ctx context.Context, orderID string, qr []byte) error
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

// OrderMirror is the per-session device mirror: best effort, never rolled
// back, never reconciled against the database copy.
type OrderMirror interface {
	AppendOrder(ctx context.Context, session string, order domain.Order) error
	SessionOrders(ctx context.Context, session string) ([]domain.Order, error)
	RecordDishSales(ctx context.Context, items []domain.CartItem) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type OrderServiceInterface interface {
	Submit(ctx context.Context, session string, input SubmitOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error)
	SessionHistory(ctx context.Context, session string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePayment(ctx context.Context, id, paymentStatus string) error
	QRCode(ctx context.Context, orderID string) ([]byte, error)
}

type ReviewRepository interface {
	ValidateDishInOrder(ctx context.Context, dishID, orderID string) (bool, error)
	GetExistingReviewID(ctx context.Context, dishID, orderID string) (int, error)
	InsertReview(ctx context.Context, review *domain.Review) error
	UpdateReview(ctx context.Context, id int, review *domain.Review) error
	ListDishReviews(ctx context.Context, dishID string) ([]domain.Review, error)
}

type ReviewCache interface {
	EventMarkerKey(eventID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type ReviewPublisher interface {
	PublishReviewEvent(ctx context.Context, event domain.ReviewEvent) error
}

type ReviewServiceInterface interface {
	CreateOrUpdate(ctx context.Context, review *domain.Review) error
	ListDishReviews(ctx context.Context, dishID string) ([]domain.Review, error)
}

type ReferenceRepository interface {
	ListDeliveryZones(ctx context.Context) ([]domain.DeliveryLocation, error)
	ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	GetCompanySettings(ctx context.Context) (*domain.CompanySettings, error)
}

type ReferenceServiceInterface interface {
	DeliveryZones(ctx context.Context) ([]domain.DeliveryLocation, error)
	DeliveryZone(ctx context.Context, id string) (*domain.DeliveryLocation, error)
	PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	PaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error)
	CompanySettings(ctx context.Context) (*domain.CompanySettings, error)
}

var (
	_ OrderServiceInterface     = (*OrderService)(nil)
	_ ReviewServiceInterface    = (*ReviewService)(nil)
	_ ReferenceServiceInterface = (*ReferenceService)(nil)
)
