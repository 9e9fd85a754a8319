package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"cantinho-algarvio/internal/domain"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingCustomer    = errors.New("customer name, address and phone are required")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrUnknownPaymentMode = errors.New("unknown payment status")
)

// SubmitOrderInput is the checkout snapshot: the cart lines, the customer
// details and the delivery/payment selections made on the checkout page.
type SubmitOrderInput struct {
	Items         []domain.CartItem
	CustomerInfo  domain.CustomerInfo
	Location      domain.DeliveryLocation
	PaymentMethod string
}

type OrderService struct {
	repo      OrderRepository
	mirror    OrderMirror
	publisher OrderPublisher
	qrEncoder QRGenerator
}

func NewOrderService(repo OrderRepository, mirror OrderMirror, publisher OrderPublisher, qr QRGenerator) *OrderService {
	return &OrderService{repo: repo, mirror: mirror, publisher: publisher, qrEncoder: qr}
}

// Submit converts the checkout snapshot into a durable order. The order id
// is generated before any write; totals are computed exactly once here and
// never recomputed after persistence. The session mirror append and the
// change-feed publish are best effort.
func (s *OrderService) Submit(ctx context.Context, session string, input SubmitOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if input.CustomerInfo.Name == "" || input.CustomerInfo.Address == "" || input.CustomerInfo.Phone == "" {
		return nil, ErrMissingCustomer
	}

	var subtotal int64
	for _, item := range input.Items {
		subtotal += item.Price * int64(item.Quantity)
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		Items:         input.Items,
		CustomerInfo:  input.CustomerInfo,
		Subtotal:      subtotal,
		DeliveryFee:   input.Location.Fee,
		Total:         subtotal + input.Location.Fee,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: input.PaymentMethod,
		Location:      input.Location.Name,
		CreatedAt:     time.Now(),
	}

	err := s.repo.CreateOrder(ctx, order)

	// The mirror is appended regardless of the database outcome, so a
	// failed submission can still show up in the visitor's local history.
	if s.mirror != nil {
		if mirrorErr := s.mirror.AppendOrder(ctx, session, *order); mirrorErr != nil {
			log.Printf("[orders] mirror append failed for %s: %v", order.ID, mirrorErr)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.mirror != nil {
		if salesErr := s.mirror.RecordDishSales(ctx, order.Items); salesErr != nil {
			log.Printf("[orders] sales counters update failed for %s: %v", order.ID, salesErr)
		}
	}

	if s.qrEncoder != nil {
		if qr, qrErr := s.qrEncoder.Generate(order.ID); qrErr == nil {
			_ = s.repo.SaveQRCode(ctx, order.ID, qr)
		}
	}

	s.publish(ctx, domain.OrderEvent{
		EventID:      uuid.NewString(),
		Type:         domain.EventOrderCreated,
		OrderID:      order.ID,
		CustomerInfo: encodeCustomerInfo(order.CustomerInfo),
		Total:        order.Total,
		Timestamp:    time.Now(),
	})

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error) {
	if status != "" && !domain.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListOrders(ctx, status, limit, offset)
}

func (s *OrderService) SessionHistory(ctx context.Context, session string) ([]domain.Order, error) {
	if s.mirror == nil {
		return nil, nil
	}
	return s.mirror.SessionOrders(ctx, session)
}

// UpdateStatus performs an administrative status transition. Transitions are
// validated against the status machine; the change feed carries the old and
// new values so listeners can tell real transitions from no-op updates.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if !domain.IsValidStatus(status) {
		return ErrInvalidStatus
	}

	current, err := s.repo.GetOrderStatus(ctx, id)
	if err != nil {
		return err
	}
	if current == status {
		return nil
	}
	if !domain.CanTransition(current, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return err
	}

	s.publish(ctx, domain.OrderEvent{
		EventID:   uuid.NewString(),
		Type:      domain.EventOrderStatusChanged,
		OrderID:   id,
		OldStatus: current,
		NewStatus: status,
		Timestamp: time.Now(),
	})

	return nil
}

func (s *OrderService) UpdatePayment(ctx context.Context, id, paymentStatus string) error {
	if paymentStatus != domain.PaymentPending && paymentStatus != domain.PaymentCompleted {
		return ErrUnknownPaymentMode
	}
	return s.repo.UpdatePaymentStatus(ctx, id, paymentStatus)
}

func (s *OrderService) QRCode(ctx context.Context, orderID string) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			_ = s.repo.SaveQRCode(ctx, orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("[orders] failed to publish %s for %s: %v", event.Type, event.OrderID, err)
	}
}

func encodeCustomerInfo(info domain.CustomerInfo) string {
	data, err := json.Marshal(info)
	if err != nil {
		return ""
	}
	return string(data)
}
