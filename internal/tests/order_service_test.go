package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cantinho-algarvio/internal/domain"
	"cantinho-algarvio/internal/mocks"
	"cantinho-algarvio/internal/service"
)

func checkoutInput() service.SubmitOrderInput {
	return service.SubmitOrderInput{
		Items: []domain.CartItem{
			{ID: "d1", Name: "Bifana", Price: 1000, Quantity: 2},
			{ID: "d2", Name: "Sumo", Price: 500, Quantity: 1},
		},
		CustomerInfo: domain.CustomerInfo{
			Name:    "Maria Silva",
			Address: "Rua 12, Talatona",
			Phone:   "923111222",
		},
		Location:      domain.DeliveryLocation{ID: "talatona", Name: "Talatona", Fee: 1500},
		PaymentMethod: "Dinheiro na Entrega",
	}
}

func TestOrderService_Submit_Success(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	mirror := mocks.NewOrderMirror(t)
	publisher := mocks.NewOrderPublisher(t)
	qr := mocks.NewQRGenerator(t)

	svc := service.NewOrderService(repo, mirror, publisher, qr)
	ctx := context.Background()

	repo.On("CreateOrder", ctx, mock.Anything).Return(nil).Once()
	mirror.On("AppendOrder", ctx, "s1", mock.Anything).Return(nil).Once()
	mirror.On("RecordDishSales", ctx, mock.Anything).Return(nil).Once()
	qr.On("Generate", mock.Anything).Return([]byte("png"), nil).Once()
	repo.On("SaveQRCode", ctx, mock.Anything, []byte("png")).Return(nil).Once()
	publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderCreated && e.EventID != ""
	})).Return(nil).Once()

	order, err := svc.Submit(ctx, "s1", checkoutInput())
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)

	// Subtotal 2500 plus fee 1500 is exactly 4000, no drift.
	assert.Equal(t, int64(2500), order.Subtotal)
	assert.Equal(t, int64(1500), order.DeliveryFee)
	assert.Equal(t, int64(4000), order.Total)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.Len(t, order.Items, 2)
}

func TestOrderService_Submit_EmptyCart(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	svc := service.NewOrderService(repo, nil, nil, nil)

	input := checkoutInput()
	input.Items = nil

	_, err := svc.Submit(context.Background(), "s1", input)
	assert.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestOrderService_Submit_MissingCustomer(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	svc := service.NewOrderService(repo, nil, nil, nil)

	input := checkoutInput()
	input.CustomerInfo.Phone = ""

	_, err := svc.Submit(context.Background(), "s1", input)
	assert.ErrorIs(t, err, service.ErrMissingCustomer)
}

func TestOrderService_Submit_DatabaseFailureStillMirrors(t *testing.T) {
	repo := mocks.NewOrderRepository(t)
	mirror := mocks.NewOrderMirror(t)

	svc := service.NewOrderService(repo, mirror, nil, nil)
	ctx := context.Background()

	repo.On("CreateOrder", ctx, mock.Anything).Return(errors.New("db down")).Once()
	// The session mirror is appended even though the database write failed.
	mirror.On("AppendOrder", ctx, "s1", mock.Anything).Return(nil).Once()

	_, err := svc.Submit(ctx, "s1", checkoutInput())
	assert.Error(t, err)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		status        string
		prepareMocks  func(repo *mocks.OrderRepository, publisher *mocks.OrderPublisher)
		expectedError error
	}{
		{
			name:   "valid_transition_publishes_event",
			status: "confirmed",
			prepareMocks: func(repo *mocks.OrderRepository, publisher *mocks.OrderPublisher) {
				repo.On("GetOrderStatus", ctx, "o1").Return("pending", nil).Once()
				repo.On("UpdateOrderStatus", ctx, "o1", "confirmed").Return(nil).Once()
				publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(e domain.OrderEvent) bool {
					return e.Type == domain.EventOrderStatusChanged &&
						e.OldStatus == "pending" && e.NewStatus == "confirmed"
				})).Return(nil).Once()
			},
		},
		{
			name:   "same_status_is_noop",
			status: "pending",
			prepareMocks: func(repo *mocks.OrderRepository, publisher *mocks.OrderPublisher) {
				repo.On("GetOrderStatus", ctx, "o1").Return("pending", nil).Once()
			},
		},
		{
			name:   "skipping_steps_rejected",
			status: "delivering",
			prepareMocks: func(repo *mocks.OrderRepository, publisher *mocks.OrderPublisher) {
				repo.On("GetOrderStatus", ctx, "o1").Return("pending", nil).Once()
			},
			expectedError: service.ErrInvalidTransition,
		},
		{
			name:   "cancel_from_preparing",
			status: "cancelled",
			prepareMocks: func(repo *mocks.OrderRepository, publisher *mocks.OrderPublisher) {
				repo.On("GetOrderStatus", ctx, "o1").Return("preparing", nil).Once()
				repo.On("UpdateOrderStatus", ctx, "o1", "cancelled").Return(nil).Once()
				publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:          "unknown_status",
			status:        "shipped",
			prepareMocks:  func(repo *mocks.OrderRepository, publisher *mocks.OrderPublisher) {},
			expectedError: service.ErrInvalidStatus,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewOrderRepository(t)
			publisher := mocks.NewOrderPublisher(t)
			testCase.prepareMocks(repo, publisher)

			svc := service.NewOrderService(repo, nil, publisher, nil)
			err := svc.UpdateStatus(ctx, "o1", testCase.status)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderService_UpdatePayment(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewOrderRepository(t)
	svc := service.NewOrderService(repo, nil, nil, nil)

	assert.ErrorIs(t, svc.UpdatePayment(ctx, "o1", "refunded"), service.ErrUnknownPaymentMode)

	repo.On("UpdatePaymentStatus", ctx, "o1", "completed").Return(nil).Once()
	assert.NoError(t, svc.UpdatePayment(ctx, "o1", "completed"))
}

func TestOrderService_QRCode_RegeneratesWhenMissing(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewOrderRepository(t)
	qr := mocks.NewQRGenerator(t)
	svc := service.NewOrderService(repo, nil, nil, qr)

	repo.On("GetQRCode", ctx, "o1").Return([]byte{}, nil).Once()
	qr.On("Generate", "o1").Return([]byte("fresh"), nil).Once()
	repo.On("SaveQRCode", ctx, "o1", []byte("fresh")).Return(nil).Once()

	data, err := svc.QRCode(ctx, "o1")
	assert.NoError(t, err)
	assert.Equal(t, []byte("fresh"), data)
}

func TestOrderService_List_RejectsUnknownStatus(t *testing.T) {
	svc := service.NewOrderService(mocks.NewOrderRepository(t), nil, nil, nil)
	_, err := svc.List(context.Background(), "shipped", 10, 0)
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}
