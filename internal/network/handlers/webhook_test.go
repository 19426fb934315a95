package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/denmor86/dessert-shop/internal/config"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/services"
)

// paymentsStub - запоминает обработанное событие
type paymentsStub struct {
	Event     string
	PaymentID string
	Err       error
}

func (s *paymentsStub) HandleEvent(ctx context.Context, eventType string, paymentID string) error {
	s.Event = eventType
	s.PaymentID = paymentID
	return s.Err
}

func TestPaymentWebhookHandler(t *testing.T) {
	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	testCases := []struct {
		TestName       string
		Body           string
		HandlerError   error
		ExpectedStatus int
		ExpectedEvent  string
	}{
		{
			TestName:       "Success. Recognized event #1",
			Body:           `{"event":"payment.succeeded","object":{"id":"pay-1"}}`,
			HandlerError:   nil,
			ExpectedStatus: http.StatusOK,
			ExpectedEvent:  "payment.succeeded",
		},
		{
			TestName:       "Success. Unknown event type still acknowledged #2",
			Body:           `{"event":"payment.exotic_event","object":{"id":"pay-1"}}`,
			HandlerError:   nil,
			ExpectedStatus: http.StatusOK,
			ExpectedEvent:  "payment.exotic_event",
		},
		{
			TestName:       "Error. Malformed body #3",
			Body:           `{"event":`,
			HandlerError:   nil,
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			TestName:       "Error. Missing payment id #4",
			Body:           `{"event":"payment.succeeded","object":{}}`,
			HandlerError:   nil,
			ExpectedStatus: http.StatusBadRequest,
		},
		{
			TestName:       "Error. No matching order #5",
			Body:           `{"event":"payment.succeeded","object":{"id":"pay-404"}}`,
			HandlerError:   services.ErrUnknownPayment,
			ExpectedStatus: http.StatusNotFound,
			ExpectedEvent:  "payment.succeeded",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			stub := &paymentsStub{Err: tc.HandlerError}
			handler := PaymentWebhookHandler(stub)

			request := httptest.NewRequest("POST", "/api/notifications/payment/webhook", strings.NewReader(tc.Body))
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if recorder.Code != tc.ExpectedStatus {
				t.Errorf("Expected status %d, got %d", tc.ExpectedStatus, recorder.Code)
			}
			if stub.Event != tc.ExpectedEvent {
				t.Errorf("Expected handled event '%s', got '%s'", tc.ExpectedEvent, stub.Event)
			}
		})
	}
}
