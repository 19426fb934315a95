package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/denmor86/dessert-shop/internal/client"
	"github.com/denmor86/dessert-shop/internal/config"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/metrics"
	"github.com/denmor86/dessert-shop/internal/models"
)

// ErrBroadcastFailed - рассылка не дошла ни до одного получателя
var ErrBroadcastFailed = errors.New("broadcast failed for all recipients")

// DispatchReport - итог рассылки одного сообщения
type DispatchReport struct {
	Attempted   int
	Sent        int
	Deactivated int
}

type BroadcastService interface {
	Broadcast(ctx context.Context, text string) (*DispatchReport, error)
}

// Dispatcher - рассылает сообщение всем активным подписчикам канала
// батчами фиксированного размера. Сбой одного получателя не влияет на
// остальных; постоянный отказ деактивирует подписчика.
type Dispatcher struct {
	Registry  SubscribersService
	Messenger client.Messenger
	Metrics   *metrics.Metrics
	Config    config.NotifyConfig
}

// Создание сервиса
func NewDispatcher(registry SubscribersService, messenger client.Messenger, m *metrics.Metrics, cfg config.NotifyConfig) *Dispatcher {
	return &Dispatcher{
		Registry:  registry,
		Messenger: messenger,
		Metrics:   m,
		Config:    cfg,
	}
}

// Broadcast - рассылка сообщения активным подписчикам.
// Снимок подписчиков берётся один раз перед рассылкой: добавившиеся в
// процессе получатели попадут в следующую рассылку. Ошибка возвращается
// только если не доставлено ни одно сообщение.
func (d *Dispatcher) Broadcast(ctx context.Context, text string) (*DispatchReport, error) {
	subscribers, err := d.Registry.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &DispatchReport{Attempted: len(subscribers)}
	if len(subscribers) == 0 {
		logger.Info("No active subscribers, skipping broadcast")
		return report, nil
	}

	for i := 0; i < len(subscribers); i += d.Config.BatchSize {
		end := i + d.Config.BatchSize
		if end > len(subscribers) {
			end = len(subscribers)
		}

		rateLimited := d.sendBatch(ctx, subscribers[i:end], text, report)
		if end == len(subscribers) {
			break
		}

		// после превышения лимита провайдера выдерживаем паузу
		// перед любыми дальнейшими отправками
		if rateLimited {
			if err := sleepContext(ctx, d.Config.RateLimitDelay); err != nil {
				return report, err
			}
		}
		// пауза между батчами, чтобы не упереться в лимиты провайдера
		if err := sleepContext(ctx, d.Config.BatchDelay); err != nil {
			return report, err
		}
	}

	if report.Sent == 0 {
		return report, ErrBroadcastFailed
	}
	return report, nil
}

// sendBatch - конкурентная отправка батча. Возвращает признак того,
// что провайдер ответил превышением лимита.
func (d *Dispatcher) sendBatch(ctx context.Context, batch []models.SubscriberData, text string, report *DispatchReport) bool {
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		rateLimited bool
	)

	for _, subscriber := range batch {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, d.Config.SendTimeout)
			defer cancel()
			err := d.Messenger.SendMessage(sendCtx, chatID, text)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Sent++
				d.Metrics.IncNotification(metrics.ChannelTelegram, metrics.OutcomeSent)
			case errors.Is(err, client.ErrBotBlocked):
				// получатель недоступен навсегда, исключаем из рассылок
				if derr := d.Registry.Deactivate(ctx, chatID); derr != nil {
					logger.Error("Failed to deactivate subscriber", chatID, derr)
				} else {
					report.Deactivated++
					logger.Info("Subscriber deactivated (bot was blocked)", chatID)
				}
				d.Metrics.IncNotification(metrics.ChannelTelegram, metrics.OutcomeDeactivated)
			case errors.Is(err, client.ErrBadMessage):
				// ошибка формирования сообщения, повтор не имеет смысла
				logger.Error("Bad message request for subscriber", chatID, err)
				d.Metrics.IncNotification(metrics.ChannelTelegram, metrics.OutcomeFailed)
			default:
				var rateErr *client.RateLimitError
				if errors.As(err, &rateErr) {
					rateLimited = true
					logger.Warn("Rate limit exceeded for subscriber", chatID)
				} else {
					logger.Error("Failed to send to subscriber", chatID, err)
				}
				d.Metrics.IncNotification(metrics.ChannelTelegram, metrics.OutcomeFailed)
			}
		}(subscriber.ChatID)
	}

	wg.Wait()
	return rateLimited
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
