package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/denmor86/dessert-shop/internal/config"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/storage"
	"github.com/denmor86/dessert-shop/internal/storage/mocks"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// notifierStub - накапливает уведомления вместо постановки в очередь
type notifierStub struct {
	Notifications []Notification
}

func (n *notifierStub) Enqueue(notification Notification) {
	n.Notifications = append(n.Notifications, notification)
}

func TestPaymentsService_HandleEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockIStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	makeOrder := func(status models.OrderStatus, payment models.PaymentStatus) *models.OrderData {
		return &models.OrderData{
			ID:            "1",
			Number:        "ORD-20250901-0042",
			UserID:        "10",
			Total:         decimal.NewFromInt(350),
			Status:        status,
			PaymentStatus: payment,
		}
	}
	user := &models.UserData{UserID: "10", Login: "mda", Email: "mda@example.com"}

	testCases := []struct {
		TestName              string
		Event                 string
		PaymentID             string
		SetupMocks            func()
		ExpectedError         error
		ExpectedNotifications int
	}{
		{
			TestName:  "Success. Payment succeeded confirms order #1",
			Event:     models.PaymentEventSucceeded,
			PaymentID: "pay-1",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusPending), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusPending, models.PaymentStatusPaid).Return(nil)
				mockStorage.EXPECT().GetOrder(gomock.Any(), "1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusPaid), nil)
				mockStorage.EXPECT().UpdateOrderStatus(gomock.Any(), "1", models.OrderStatusPending, models.OrderStatusConfirmed).Return(nil)
				mockStorage.EXPECT().GetUserByID(gomock.Any(), "10").Return(user, nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 1,
		},
		{
			TestName:  "Success. Duplicate succeeded event is a no-op #2",
			Event:     models.PaymentEventSucceeded,
			PaymentID: "pay-1",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusConfirmed, models.PaymentStatusPaid), nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 0,
		},
		{
			TestName:  "Success. Late waiting_for_capture after paid is ignored #3",
			Event:     models.PaymentEventWaitingForCapture,
			PaymentID: "pay-1",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusConfirmed, models.PaymentStatusPaid), nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 0,
		},
		{
			TestName:  "Success. Waiting for capture moves payment to processing #4",
			Event:     models.PaymentEventWaitingForCapture,
			PaymentID: "pay-1",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusPending), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusPending, models.PaymentStatusProcessing).Return(nil)
				mockStorage.EXPECT().GetUserByID(gomock.Any(), "10").Return(user, nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 1,
		},
		{
			TestName:  "Success. Payment canceled cancels order #5",
			Event:     models.PaymentEventCanceled,
			PaymentID: "pay-1",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusPending), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusPending, models.PaymentStatusFailed).Return(nil)
				mockStorage.EXPECT().GetOrder(gomock.Any(), "1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusFailed), nil)
				mockStorage.EXPECT().UpdateOrderStatus(gomock.Any(), "1", models.OrderStatusPending, models.OrderStatusCancelled).Return(nil)
				mockStorage.EXPECT().GetUserByID(gomock.Any(), "10").Return(user, nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 1,
		},
		{
			TestName:  "Success. Refund on delivered order keeps order status #6",
			Event:     models.PaymentEventRefundSucceeded,
			PaymentID: "pay-1",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusDelivered, models.PaymentStatusPaid), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusPaid, models.PaymentStatusRefunded).Return(nil)
				mockStorage.EXPECT().GetUserByID(gomock.Any(), "10").Return(user, nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 1,
		},
		{
			TestName:  "Success. Succeeded on manually cancelled order records payment only #7",
			Event:     models.PaymentEventSucceeded,
			PaymentID: "pay-1",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusCancelled, models.PaymentStatusPending), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusPending, models.PaymentStatusPaid).Return(nil)
				mockStorage.EXPECT().GetOrder(gomock.Any(), "1").Return(makeOrder(models.OrderStatusCancelled, models.PaymentStatusPaid), nil)
				mockStorage.EXPECT().GetUserByID(gomock.Any(), "10").Return(user, nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 1,
		},
		{
			TestName:  "Success. Losing CAS race is retried from fresh state #8",
			Event:     models.PaymentEventSucceeded,
			PaymentID: "pay-1",
			SetupMocks: func() {
				// параллельный waiting_for_capture выигрывает гонку pending→processing,
				// succeeded обязан дойти до paid со второй попытки
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusPending), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusPending, models.PaymentStatusPaid).Return(storage.ErrStatusConflict)
				mockStorage.EXPECT().GetOrder(gomock.Any(), "1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusProcessing), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusProcessing, models.PaymentStatusPaid).Return(nil)
				mockStorage.EXPECT().GetOrder(gomock.Any(), "1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusPaid), nil)
				mockStorage.EXPECT().UpdateOrderStatus(gomock.Any(), "1", models.OrderStatusPending, models.OrderStatusConfirmed).Return(nil)
				mockStorage.EXPECT().GetUserByID(gomock.Any(), "10").Return(user, nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 1,
		},
		{
			TestName:  "Error. Unknown payment id #9",
			Event:     models.PaymentEventSucceeded,
			PaymentID: "pay-404",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-404").Return(nil, storage.ErrOrderNotFound)
			},
			ExpectedError:         ErrUnknownPayment,
			ExpectedNotifications: 0,
		},
		{
			TestName:              "Success. Unknown event type is ignored #10",
			Event:                 "payment.exotic_event",
			PaymentID:             "pay-1",
			SetupMocks:            func() {},
			ExpectedError:         nil,
			ExpectedNotifications: 0,
		},
		{
			TestName:  "Success. Reread after race shows event already applied #11",
			Event:     models.PaymentEventSucceeded,
			PaymentID: "pay-1",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusPending), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusPending, models.PaymentStatusPaid).Return(storage.ErrStatusConflict)
				mockStorage.EXPECT().GetOrder(gomock.Any(), "1").Return(makeOrder(models.OrderStatusConfirmed, models.PaymentStatusPaid), nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 0,
		},
		{
			TestName:  "Success. Conflict persists after retry, treated as duplicate #12",
			Event:     models.PaymentEventSucceeded,
			PaymentID: "pay-1",
			SetupMocks: func() {
				mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusPending), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusPending, models.PaymentStatusPaid).Return(storage.ErrStatusConflict)
				mockStorage.EXPECT().GetOrder(gomock.Any(), "1").Return(makeOrder(models.OrderStatusPending, models.PaymentStatusProcessing), nil)
				mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusProcessing, models.PaymentStatusPaid).Return(storage.ErrStatusConflict)
				mockStorage.EXPECT().GetOrder(gomock.Any(), "1").Return(makeOrder(models.OrderStatusConfirmed, models.PaymentStatusPaid), nil)
			},
			ExpectedError:         nil,
			ExpectedNotifications: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			notifier := &notifierStub{}
			payments := NewPayments(mockStorage, NewLifecycle(mockStorage), notifier, nil)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := payments.HandleEvent(ctx, tc.Event, tc.PaymentID)

			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
			if len(notifier.Notifications) != tc.ExpectedNotifications {
				t.Errorf("Expected %d notifications, got %d", tc.ExpectedNotifications, len(notifier.Notifications))
			}
		})
	}
}

func TestPaymentsService_NotificationContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockIStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	order := &models.OrderData{
		ID:            "1",
		Number:        "ORD-20250901-0042",
		UserID:        "10",
		Total:         decimal.NewFromInt(350),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	user := &models.UserData{UserID: "10", Login: "mda", Email: "mda@example.com"}

	mockStorage.EXPECT().GetOrderByPayment(gomock.Any(), "pay-1").Return(order, nil)
	mockStorage.EXPECT().UpdateOrderPayment(gomock.Any(), "1", models.PaymentStatusPending, models.PaymentStatusPaid).Return(nil)
	mockStorage.EXPECT().GetOrder(gomock.Any(), "1").Return(order, nil)
	mockStorage.EXPECT().UpdateOrderStatus(gomock.Any(), "1", models.OrderStatusPending, models.OrderStatusConfirmed).Return(nil)
	mockStorage.EXPECT().GetUserByID(gomock.Any(), "10").Return(user, nil)

	notifier := &notifierStub{}
	payments := NewPayments(mockStorage, NewLifecycle(mockStorage), notifier, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := payments.HandleEvent(ctx, models.PaymentEventSucceeded, "pay-1"); err != nil {
		t.Fatalf("Expected no error, got '%v'", err)
	}
	if len(notifier.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifier.Notifications))
	}

	notification := notifier.Notifications[0]
	if notification.Email == nil {
		t.Fatal("Expected email notification")
	}
	if notification.Email.To != "mda@example.com" {
		t.Errorf("Expected email to customer, got '%s'", notification.Email.To)
	}
	if !strings.Contains(notification.Email.Subject, "ORD-20250901-0042") {
		t.Errorf("Expected subject to mention order number, got '%s'", notification.Email.Subject)
	}
	if !strings.Contains(notification.Broadcast, "350.00") {
		t.Errorf("Expected broadcast to mention order total, got '%s'", notification.Broadcast)
	}
}
