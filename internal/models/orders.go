package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus - статус жизненного цикла заказа
type OrderStatus string

// Статусы заказов
const (
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusConfirmed        OrderStatus = "confirmed"
	OrderStatusPreparing        OrderStatus = "preparing"
	OrderStatusReadyForDelivery OrderStatus = "ready_for_delivery"
	OrderStatusOutForDelivery   OrderStatus = "out_for_delivery"
	OrderStatusDelivered        OrderStatus = "delivered"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

// orderTransitions - таблица допустимых переходов статусов заказа.
// Терминальные статусы (delivered, cancelled) не имеют преемников.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:          {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:        {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:        {OrderStatusReadyForDelivery},
	OrderStatusReadyForDelivery: {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery:   {OrderStatusDelivered},
	OrderStatusDelivered:        {},
	OrderStatusCancelled:        {},
}

// CanTransition - проверяет допустимость перехода из статуса from в статус to
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal - проверяет, является ли статус терминальным
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// Valid - проверяет, что статус входит в известный набор
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// PaymentMethod - способ оплаты заказа
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// DeliveryAddress - адрес доставки заказа
type DeliveryAddress struct {
	Street    string `json:"street"`
	House     string `json:"houseNumber"`
	Apartment string `json:"apartmentNumber,omitempty"`
	Floor     string `json:"floor,omitempty"`
	Entrance  string `json:"entrance,omitempty"`
	Doorcode  string `json:"doorcode,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

// OrderItemData - позиция заказа. Цена за единицу фиксируется на момент
// оформления и не зависит от последующих изменений каталога.
type OrderItemData struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// OrderData - модель заказа из хранилища
type OrderData struct {
	ID            string
	Number        string
	UserID        string
	Items         []OrderItemData
	Total         decimal.Decimal
	Address       DeliveryAddress
	PaymentMethod PaymentMethod
	PaymentID     string
	Status        OrderStatus
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItemRequest - позиция заказа в запросе оформления
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest - модель запроса оформления заказа, приходит извне
type OrderRequest struct {
	Items         []OrderItemRequest `json:"items"`
	Address       *DeliveryAddress   `json:"deliveryAddress"`
	PaymentMethod PaymentMethod      `json:"paymentMethod"`
	Comment       string             `json:"deliveryComment,omitempty"`
}

// OrderItemResponse - позиция заказа для выдачи
type OrderItemResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// OrderResponse - модель заказа для выдачи
type OrderResponse struct {
	Number        string              `json:"number"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"paymentStatus"`
	Total         float64             `json:"total"`
	Items         []OrderItemResponse `json:"items"`
	Address       DeliveryAddress     `json:"deliveryAddress"`
	CreatedAt     string              `json:"createdAt"`
}

// StatusRequest - модель запроса смены статуса заказа
type StatusRequest struct {
	Status string `json:"status"`
}

// PaymentRequest - модель запроса привязки платежа провайдера к заказу
type PaymentRequest struct {
	PaymentID string `json:"paymentId"`
}

// TransitionResult - результат применённого перехода статуса
type TransitionResult struct {
	From OrderStatus
	To   OrderStatus
}
