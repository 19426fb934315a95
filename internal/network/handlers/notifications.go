package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/services"
	"go.uber.org/zap"
)

// BroadcastHandler - административная рассылка сообщения подписчикам
func BroadcastHandler(s services.BroadcastService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request models.BroadcastRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid body:", zap.Error(err))
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(request.Message) == "" {
			http.Error(w, "Empty message", http.StatusBadRequest)
			return
		}

		report, err := s.Broadcast(r.Context(), request.Message)
		if err != nil {
			if errors.Is(err, services.ErrBroadcastFailed) {
				http.Error(w, "Broadcast failed for all subscribers", http.StatusBadGateway)
				return
			}
			logger.Error("Failed to broadcast:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := models.BroadcastResponse{
			Attempted:   report.Attempted,
			Sent:        report.Sent,
			Deactivated: report.Deactivated,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

// SubscribersStatsHandler - сводка по подписчикам для администратора
func SubscribersStatsHandler(s services.SubscribersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Stats(r.Context())
		if err != nil {
			logger.Error("Failed to get subscriber stats:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}
