package services

import (
	"context"
	"errors"
	"time"

	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/metrics"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/storage"
	"github.com/sethvargo/go-retry"
)

// ErrUnknownPayment - заказ с таким идентификатором платежа не найден
var ErrUnknownPayment = errors.New("unknown payment")

type PaymentsService interface {
	HandleEvent(ctx context.Context, eventType string, paymentID string) error
}

// Payments - сверка событий платёжного провайдера с состоянием заказов.
// Провайдер доставляет события минимум один раз: обработка обязана быть
// идемпотентной к дублям и устойчивой к нарушению порядка.
type Payments struct {
	Storage   storage.IStorage
	Lifecycle LifecycleService
	Notifier  NotifierService
	Metrics   *metrics.Metrics
}

// Создание сервиса
func NewPayments(storage storage.IStorage, lifecycle LifecycleService, notifier NotifierService, m *metrics.Metrics) PaymentsService {
	return &Payments{
		Storage:   storage,
		Lifecycle: lifecycle,
		Notifier:  notifier,
		Metrics:   m,
	}
}

// eventEffect - отображение события провайдера на статус оплаты и
// целевой статус заказа
type eventEffect struct {
	payment models.PaymentStatus
	status  models.OrderStatus
}

var eventEffects = map[string]eventEffect{
	models.PaymentEventWaitingForCapture: {payment: models.PaymentStatusProcessing},
	models.PaymentEventSucceeded:         {payment: models.PaymentStatusPaid, status: models.OrderStatusConfirmed},
	models.PaymentEventCanceled:          {payment: models.PaymentStatusFailed, status: models.OrderStatusCancelled},
	models.PaymentEventRefundSucceeded:   {payment: models.PaymentStatusRefunded},
}

// HandleEvent - обработка события платёжного провайдера.
// Событие применяется только если двигает статус оплаты вперёд по
// линейному порядку; дубли и опоздавшие события принимаются без эффекта
// и без повторных уведомлений. Неизвестные типы событий игнорируются.
func (s *Payments) HandleEvent(ctx context.Context, eventType string, paymentID string) error {
	effect, known := eventEffects[eventType]
	if !known {
		// схема событий провайдера может расширяться, это не ошибка
		logger.Warn("Ignoring unknown payment event", eventType)
		s.Metrics.IncWebhook(eventType, metrics.OutcomeUnknown)
		return nil
	}

	order, err := s.Storage.GetOrderByPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			logger.Warn("Order not found for payment", paymentID)
			s.Metrics.IncWebhook(eventType, metrics.OutcomeError)
			return ErrUnknownPayment
		}
		s.Metrics.IncWebhook(eventType, metrics.OutcomeError)
		return err
	}

	// CAS по статусу оплаты: при конфликте заказ перечитывается и попытка
	// повторяется один раз уже от свежего статуса. Гонка с другим событием
	// того же платежа не должна терять движение вперёд: проигравший
	// pending→paid обязан пройти как processing→paid со второй попытки.
	applied := false
	backoff := retry.WithMaxRetries(1, retry.NewConstant(50*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		// статус оплаты уже на уровне события или дальше - дубль
		if !order.PaymentStatus.Before(effect.payment) {
			return nil
		}
		if uerr := s.Storage.UpdateOrderPayment(ctx, order.ID, order.PaymentStatus, effect.payment); uerr != nil {
			if errors.Is(uerr, storage.ErrStatusConflict) {
				fresh, ferr := s.Storage.GetOrder(ctx, order.ID)
				if ferr != nil {
					return ferr
				}
				order = fresh
				logger.Warn("Payment status raced, retrying from fresh state", eventType, order.Number)
				return retry.RetryableError(uerr)
			}
			return uerr
		}
		applied = true
		return nil
	})
	if err != nil {
		// повторный конфликт: событие уже применено конкурентом
		if errors.Is(err, storage.ErrStatusConflict) {
			logger.Info("Payment status raced twice, treating as duplicate", eventType, order.Number)
			s.Metrics.IncWebhook(eventType, metrics.OutcomeDuplicate)
			return nil
		}
		s.Metrics.IncWebhook(eventType, metrics.OutcomeError)
		return err
	}
	if !applied {
		logger.Info("Duplicate payment event, no effect", eventType, order.Number)
		s.Metrics.IncWebhook(eventType, metrics.OutcomeDuplicate)
		return nil
	}
	order.PaymentStatus = effect.payment

	from := order.Status
	to := order.Status
	if effect.status != "" {
		to = s.applyStatusEffect(ctx, order, effect.status)
	}

	s.notify(ctx, order, eventType, from, to)
	s.Metrics.IncWebhook(eventType, metrics.OutcomeApplied)
	return nil
}

// applyStatusEffect - перевод заказа в целевой статус. Недопустимый
// переход означает, что заказ уже продвинулся дальше (или отменён
// вручную) - это не ошибка сверки.
func (s *Payments) applyStatusEffect(ctx context.Context, order *models.OrderData, target models.OrderStatus) models.OrderStatus {
	result, err := s.Lifecycle.Transition(ctx, order.ID, target)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNotCancellable):
			logger.Info("Order already past target status", order.Number, target)
		case errors.Is(err, ErrTransitionConflict):
			logger.Warn("Order transition raced with another change", order.Number, target)
		default:
			logger.Error("Failed to apply order transition", order.Number, err)
		}
		return order.Status
	}
	order.Status = result.To
	return result.To
}

// notify - постановка уведомлений в очередь. Доставка best-effort и не
// участвует в транзакции: состояние заказа уже зафиксировано.
func (s *Payments) notify(ctx context.Context, order *models.OrderData, eventType string, from models.OrderStatus, to models.OrderStatus) {
	user, err := s.Storage.GetUserByID(ctx, order.UserID)
	if err != nil {
		logger.Error("Failed to get order customer", order.Number, err)
		return
	}

	notification := Notification{}
	switch eventType {
	case models.PaymentEventSucceeded:
		subject, body := OrderConfirmationEmail(order)
		notification.Email = &EmailNotification{To: user.Email, Subject: subject, Body: body}
		notification.Broadcast = NewOrderBroadcast(order, user.Login)
	case models.PaymentEventCanceled:
		subject, body := StatusUpdateEmail(order, models.OrderStatusCancelled)
		notification.Email = &EmailNotification{To: user.Email, Subject: subject, Body: body}
		notification.Broadcast = StatusChangedBroadcast(order, user.Login, from, to)
	default:
		subject, body := StatusUpdateEmail(order, to)
		if from == to {
			// смены статуса заказа не было, клиенту сообщаем только
			// о движении оплаты
			subject, body = PaymentUpdateEmail(order)
		}
		notification.Email = &EmailNotification{To: user.Email, Subject: subject, Body: body}
		notification.Broadcast = PaymentUpdateBroadcast(order, user.Login)
	}
	s.Notifier.Enqueue(notification)
}
