package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/services"
	"go.uber.org/zap"
)

// PaymentWebhookHandler - приём уведомлений платёжного провайдера.
// Провайдер повторяет доставку до получения 200, поэтому распознанное
// или проигнорированное событие всегда подтверждается успехом.
func PaymentWebhookHandler(s services.PaymentsService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request models.WebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid webhook body:", zap.Error(err))
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}
		if request.Event == "" || request.Object.ID == "" {
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}

		if err := s.HandleEvent(r.Context(), request.Event, request.Object.ID); err != nil {
			if errors.Is(err, services.ErrUnknownPayment) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			logger.Error("Failed to handle payment event:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}
