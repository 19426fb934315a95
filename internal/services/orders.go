package services

import (
	"context"
	"errors"
	"time"

	"github.com/denmor86/dessert-shop/internal/helpers"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrNoAddress          = errors.New("delivery address is required")
	ErrProductUnavailable = errors.New("product is not available")
	ErrOrderNotFound      = errors.New("order not found")
)

type OrdersService interface {
	CreateOrder(ctx context.Context, login string, request models.OrderRequest) (*models.OrderData, error)
	GetOrders(ctx context.Context, login string, limit int, offset int) ([]models.OrderData, error)
	GetOrder(ctx context.Context, login string, orderID string) (*models.OrderData, error)
	AttachPayment(ctx context.Context, login string, orderID string, paymentID string) error
	CancelOrder(ctx context.Context, login string, orderID string) (*models.OrderData, error)
	ConfirmDelivery(ctx context.Context, login string, orderID string) (*models.OrderData, error)
	UpdateStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.TransitionResult, error)
}

type Orders struct {
	Storage   storage.IStorage
	Lifecycle LifecycleService
	Notifier  NotifierService
}

// Создание сервиса
func NewOrders(storage storage.IStorage, lifecycle LifecycleService, notifier NotifierService) OrdersService {
	return &Orders{Storage: storage, Lifecycle: lifecycle, Notifier: notifier}
}

// CreateOrder - оформление заказа. Цены и названия товаров фиксируются
// на момент оформления, итог считается в decimal с округлением до копеек
// и больше не меняется.
func (s *Orders) CreateOrder(ctx context.Context, login string, request models.OrderRequest) (*models.OrderData, error) {
	user, err := s.Storage.GetUser(ctx, login)
	if err != nil {
		return nil, err
	}

	if len(request.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if request.Address == nil {
		return nil, ErrNoAddress
	}

	total := decimal.Zero
	items := make([]models.OrderItemData, 0, len(request.Items))
	for _, item := range request.Items {
		product, err := s.Storage.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				return nil, ErrProductUnavailable
			}
			return nil, err
		}
		if !product.Available() || item.Quantity <= 0 {
			return nil, ErrProductUnavailable
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, models.OrderItemData{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	address := *request.Address
	if request.Comment != "" {
		address.Comment = request.Comment
	}

	now := time.Now()
	order := models.OrderData{
		ID:            uuid.New().String(),
		Number:        helpers.GenerateOrderNumber(now),
		UserID:        user.UserID,
		Items:         items,
		Total:         total.Round(2),
		Address:       address,
		PaymentMethod: request.PaymentMethod,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     now,
	}

	if err := s.Storage.AddOrder(ctx, order); err != nil {
		return nil, err
	}
	logger.Info("Order created", order.Number, login)

	// уведомления best-effort, ошибки доставки не влияют на оформление
	subject, body := OrderConfirmationEmail(&order)
	s.Notifier.Enqueue(Notification{
		Email:     &EmailNotification{To: user.Email, Subject: subject, Body: body},
		Broadcast: NewOrderBroadcast(&order, user.Login),
	})

	return &order, nil
}

// GetOrders - история заказов пользователя
func (s *Orders) GetOrders(ctx context.Context, login string, limit int, offset int) ([]models.OrderData, error) {
	user, err := s.Storage.GetUser(ctx, login)
	if err != nil {
		return nil, err
	}
	return s.Storage.GetOrders(ctx, user.UserID, limit, offset)
}

// GetOrder - заказ пользователя по идентификатору. Чужой заказ
// неотличим от несуществующего.
func (s *Orders) GetOrder(ctx context.Context, login string, orderID string) (*models.OrderData, error) {
	user, err := s.Storage.GetUser(ctx, login)
	if err != nil {
		return nil, err
	}
	order, err := s.Storage.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != user.UserID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AttachPayment - привязка идентификатора платежа провайдера к заказу.
// Витрина создаёт платёж у провайдера после оформления и сообщает его
// идентификатор, по нему затем сверяются вебхуки.
func (s *Orders) AttachPayment(ctx context.Context, login string, orderID string, paymentID string) error {
	order, err := s.GetOrder(ctx, login, orderID)
	if err != nil {
		return err
	}
	if err := s.Storage.SetOrderPayment(ctx, order.ID, paymentID); err != nil {
		return err
	}
	logger.Info("Payment attached to order", order.Number, paymentID)
	return nil
}

// CancelOrder - отмена заказа покупателем
func (s *Orders) CancelOrder(ctx context.Context, login string, orderID string) (*models.OrderData, error) {
	order, err := s.GetOrder(ctx, login, orderID)
	if err != nil {
		return nil, err
	}
	result, err := s.Lifecycle.Cancel(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Status = result.To
	return order, nil
}

// ConfirmDelivery - подтверждение получения заказа покупателем
func (s *Orders) ConfirmDelivery(ctx context.Context, login string, orderID string) (*models.OrderData, error) {
	order, err := s.GetOrder(ctx, login, orderID)
	if err != nil {
		return nil, err
	}
	result, err := s.Lifecycle.ConfirmDelivery(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Status = result.To
	return order, nil
}

// UpdateStatus - административная смена статуса заказа.
// Успешный переход ставит в очередь письмо клиенту и сообщение в канал
// персонала.
func (s *Orders) UpdateStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.TransitionResult, error) {
	result, err := s.Lifecycle.Transition(ctx, orderID, target)
	if err != nil {
		return nil, err
	}

	order, err := s.Storage.GetOrder(ctx, orderID)
	if err != nil {
		logger.Error("Failed to reread order for notification", orderID, err)
		return result, nil
	}
	user, err := s.Storage.GetUserByID(ctx, order.UserID)
	if err != nil {
		logger.Error("Failed to get order customer", order.Number, err)
		return result, nil
	}

	subject, body := StatusUpdateEmail(order, result.To)
	s.Notifier.Enqueue(Notification{
		Email:     &EmailNotification{To: user.Email, Subject: subject, Body: body},
		Broadcast: StatusChangedBroadcast(order, user.Login, result.From, result.To),
	})
	return result, nil
}
