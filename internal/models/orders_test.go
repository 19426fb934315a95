package models

import "testing"

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		From    OrderStatus
		To      OrderStatus
		Allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusPreparing, OrderStatusReadyForDelivery, true},
		{OrderStatusReadyForDelivery, OrderStatusOutForDelivery, true},
		{OrderStatusOutForDelivery, OrderStatusDelivered, true},

		// пропуск этапов запрещён
		{OrderStatusPending, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusOutForDelivery, false},
		// отмена возможна только до начала приготовления
		{OrderStatusPreparing, OrderStatusCancelled, false},
		{OrderStatusOutForDelivery, OrderStatusCancelled, false},
		// из терминальных статусов выхода нет
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		// движение назад запрещено
		{OrderStatusPreparing, OrderStatusConfirmed, false},
	}

	for _, tc := range testCases {
		if got := CanTransition(tc.From, tc.To); got != tc.Allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.From, tc.To, got, tc.Allowed)
		}
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusPending:          false,
		OrderStatusConfirmed:        false,
		OrderStatusPreparing:        false,
		OrderStatusReadyForDelivery: false,
		OrderStatusOutForDelivery:   false,
		OrderStatusDelivered:        true,
		OrderStatusCancelled:        true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestPaymentStatus_Before(t *testing.T) {
	testCases := []struct {
		Current PaymentStatus
		Target  PaymentStatus
		Want    bool
	}{
		{PaymentStatusPending, PaymentStatusProcessing, true},
		{PaymentStatusPending, PaymentStatusPaid, true},
		{PaymentStatusProcessing, PaymentStatusPaid, true},
		{PaymentStatusPaid, PaymentStatusRefunded, true},
		{PaymentStatusPending, PaymentStatusFailed, true},

		// дубли и опоздавшие события
		{PaymentStatusPaid, PaymentStatusPaid, false},
		{PaymentStatusPaid, PaymentStatusProcessing, false},
		{PaymentStatusProcessing, PaymentStatusPending, false},
		// из поглощающих статусов движения нет
		{PaymentStatusFailed, PaymentStatusRefunded, false},
		{PaymentStatusRefunded, PaymentStatusFailed, false},
	}

	for _, tc := range testCases {
		if got := tc.Current.Before(tc.Target); got != tc.Want {
			t.Errorf("%s.Before(%s) = %v, want %v", tc.Current, tc.Target, got, tc.Want)
		}
	}
}
