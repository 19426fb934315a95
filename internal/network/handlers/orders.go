package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/denmor86/dessert-shop/internal/helpers"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateOrderHandler — оформление заказа пользователем
func CreateOrderHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := helpers.GetUsername(r.Context())
		if err != nil {
			logger.Warn("Failed to get username:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		var request models.OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid body:", zap.Error(err))
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}

		order, err := s.CreateOrder(r.Context(), username, request)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyOrder),
				errors.Is(err, services.ErrNoAddress),
				errors.Is(err, services.ErrProductUnavailable):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				logger.Error("Failed to create order:", zap.Error(err))
				http.Error(w, "Server Error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(MakeOrderResponse(order)); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

// GetOrdersHandler — получение истории заказов пользователя
func GetOrdersHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := helpers.GetUsername(r.Context())
		if err != nil {
			logger.Warn("Failed to get username:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		limit := queryInt(r, "limit", 10)
		page := queryInt(r, "page", 1)
		if limit < 1 {
			limit = 10
		}
		if page < 1 {
			page = 1
		}

		orders, err := s.GetOrders(r.Context(), username, limit, (page-1)*limit)
		if err != nil {
			logger.Error("Failed to get orders:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		response := make([]models.OrderResponse, 0, len(orders))
		for i := range orders {
			response = append(response, MakeOrderResponse(&orders[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// GetOrderHandler — получение деталей заказа пользователя
func GetOrderHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := helpers.GetUsername(r.Context())
		if err != nil {
			logger.Warn("Failed to get username:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		order, err := s.GetOrder(r.Context(), username, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, services.ErrOrderNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			logger.Error("Failed to get order:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(MakeOrderResponse(order)); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

// AttachPaymentHandler — привязка платежа провайдера к заказу
func AttachPaymentHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := helpers.GetUsername(r.Context())
		if err != nil {
			logger.Warn("Failed to get username:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		var request models.PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid body:", zap.Error(err))
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}
		if request.PaymentID == "" {
			http.Error(w, "Payment id is required", http.StatusBadRequest)
			return
		}

		if err := s.AttachPayment(r.Context(), username, chi.URLParam(r, "id"), request.PaymentID); err != nil {
			if errors.Is(err, services.ErrOrderNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			logger.Error("Failed to attach payment:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}

// CancelOrderHandler — отмена заказа покупателем
func CancelOrderHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := helpers.GetUsername(r.Context())
		if err != nil {
			logger.Warn("Failed to get username:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		order, err := s.CancelOrder(r.Context(), username, chi.URLParam(r, "id"))
		if err != nil {
			writeTransitionError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(MakeOrderResponse(order)); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

// ConfirmDeliveryHandler — подтверждение получения заказа покупателем
func ConfirmDeliveryHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := helpers.GetUsername(r.Context())
		if err != nil {
			logger.Warn("Failed to get username:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		order, err := s.ConfirmDelivery(r.Context(), username, chi.URLParam(r, "id"))
		if err != nil {
			writeTransitionError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(MakeOrderResponse(order)); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

// UpdateOrderStatusHandler — административная смена статуса заказа
func UpdateOrderStatusHandler(s services.OrdersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request models.StatusRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid body:", zap.Error(err))
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}

		target := models.OrderStatus(request.Status)
		if !target.Valid() {
			http.Error(w, "Unknown order status", http.StatusBadRequest)
			return
		}

		result, err := s.UpdateStatus(r.Context(), chi.URLParam(r, "id"), target)
		if err != nil {
			writeTransitionError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{
			"from": string(result.From),
			"to":   string(result.To),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
		}
	})
}

// writeTransitionError — преобразование ошибок машины состояний в HTTP-ответ
func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		http.Error(w, "Order not found", http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidTransition):
		http.Error(w, "Invalid order status transition", http.StatusConflict)
	case errors.Is(err, services.ErrNotCancellable):
		http.Error(w, "Order cannot be cancelled at this stage", http.StatusConflict)
	case errors.Is(err, services.ErrNotConfirmable):
		http.Error(w, "Order delivery cannot be confirmed at this stage", http.StatusConflict)
	case errors.Is(err, services.ErrTransitionConflict):
		http.Error(w, "Order was modified concurrently, try again", http.StatusConflict)
	default:
		logger.Error("Failed to change order status:", zap.Error(err))
		http.Error(w, "Server Error", http.StatusInternalServerError)
	}
}

// MakeOrderResponse — преобразование модели заказа в модель выдачи
func MakeOrderResponse(order *models.OrderData) models.OrderResponse {
	items := make([]models.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.InexactFloat64(),
		})
	}
	return models.OrderResponse{
		Number:        order.Number,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		Total:         order.Total.InexactFloat64(),
		Items:         items,
		Address:       order.Address,
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
