package services

import (
	"context"
	"errors"
	"time"

	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/storage"
	"github.com/sethvargo/go-retry"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotCancellable    = errors.New("order cannot be cancelled at this stage")
	ErrNotConfirmable    = errors.New("order delivery cannot be confirmed at this stage")
	// ErrTransitionConflict - конкурирующий переход выиграл гонку, повтор не помог
	ErrTransitionConflict = errors.New("concurrent order status change")
)

type LifecycleService interface {
	Transition(ctx context.Context, orderID string, target models.OrderStatus) (*models.TransitionResult, error)
	Cancel(ctx context.Context, orderID string) (*models.TransitionResult, error)
	ConfirmDelivery(ctx context.Context, orderID string) (*models.TransitionResult, error)
}

// Lifecycle - машина состояний заказа. Единственное место, где
// проверяется и применяется переход статуса.
type Lifecycle struct {
	Storage storage.IStorage
}

// Создание сервиса
func NewLifecycle(storage storage.IStorage) LifecycleService {
	return &Lifecycle{Storage: storage}
}

// Transition - валидирует и применяет переход статуса заказа.
// Запись в хранилище выполняется CAS-обновлением по текущему статусу;
// при конфликте переход перечитывается и повторяется один раз.
func (s *Lifecycle) Transition(ctx context.Context, orderID string, target models.OrderStatus) (*models.TransitionResult, error) {
	if !target.Valid() {
		return nil, ErrInvalidTransition
	}

	var result *models.TransitionResult
	backoff := retry.WithMaxRetries(1, retry.NewConstant(50*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		order, err := s.Storage.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !models.CanTransition(order.Status, target) {
			return ErrInvalidTransition
		}
		if err := s.Storage.UpdateOrderStatus(ctx, orderID, order.Status, target); err != nil {
			if errors.Is(err, storage.ErrStatusConflict) {
				logger.Warn("Order status conflict, retrying", orderID)
				return retry.RetryableError(err)
			}
			return err
		}
		result = &models.TransitionResult{From: order.Status, To: target}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrStatusConflict) {
			return nil, ErrTransitionConflict
		}
		return nil, err
	}
	return result, nil
}

// Cancel - отмена заказа. Допустима только из pending или confirmed.
func (s *Lifecycle) Cancel(ctx context.Context, orderID string) (*models.TransitionResult, error) {
	result, err := s.Transition(ctx, orderID, models.OrderStatusCancelled)
	if errors.Is(err, ErrInvalidTransition) {
		return nil, ErrNotCancellable
	}
	return result, err
}

// ConfirmDelivery - подтверждение получения заказа покупателем.
// Допустимо только из out_for_delivery.
func (s *Lifecycle) ConfirmDelivery(ctx context.Context, orderID string) (*models.TransitionResult, error) {
	result, err := s.Transition(ctx, orderID, models.OrderStatusDelivered)
	if errors.Is(err, ErrInvalidTransition) {
		return nil, ErrNotConfirmable
	}
	return result, err
}
